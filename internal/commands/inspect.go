package commands

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gerunddev/orgtree/arena"
	"github.com/gerunddev/orgtree/diff"
	"github.com/gerunddev/orgtree/internal/tui"
	"github.com/gerunddev/orgtree/report"
	"github.com/gerunddev/orgtree/styles"
)

func newClockCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clock <file>",
		Short: "Summarize clocked time per headline",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.load(args[0])
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			entries := report.Clocks(o)
			if len(entries) == 0 {
				fmt.Fprintln(w, styles.DimStyle.Render("No clocked time"))
				return nil
			}

			fmt.Fprintln(w, report.Table(entries))
			fmt.Fprintf(w, "%s %s\n", styles.HeaderStyle.Render("Total:"), report.FormatMinutes(report.Sum(entries)))
			return nil
		},
	}
}

func newDiffCmd(a *app) *cobra.Command {
	var mdPath string
	var raw bool

	cmd := &cobra.Command{
		Use:   "diff <file>",
		Short: "Show what a parse and re-export changes in an org file",
		Long: `Without --md, the org file is parsed, written back out as org text and
compared to itself. With --md, an existing markdown export is compared to a
fresh one.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				unified string
				err     error
			)
			if mdPath != "" {
				idMap, lerr := a.cfg.LoadIDMap()
				if lerr != nil {
					return lerr
				}
				unified, err = diff.Export(args[0], mdPath, a.parser, idMap)
			} else {
				unified, err = diff.Roundtrip(args[0], a.parser)
			}
			if err != nil {
				a.log.FileError(args[0], err)
				return err
			}

			w := cmd.OutOrStdout()
			a.log.RoundtripChecked(args[0], unified == "")
			if unified == "" {
				fmt.Fprintln(w, styles.SuccessStyle.Render("✓ No differences"))
				return nil
			}
			if raw {
				fmt.Fprint(w, unified)
			} else {
				fmt.Fprint(w, diff.Render(unified))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&mdPath, "md", "", "markdown file to compare against a fresh export")
	cmd.Flags().BoolVar(&raw, "raw", false, "print the unified diff without terminal rendering")
	return cmd
}

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check <file>...",
		Short: "Check that org files parse into well-formed trees",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			failed := 0
			for _, path := range args {
				o, err := a.load(path)
				if err == nil {
					err = o.Validate()
					if err != nil {
						a.log.InvalidTree(path, err)
					}
				}
				if err != nil {
					failed++
					fmt.Fprintf(w, "%s %s\n%s\n", styles.ErrorStyle.Render("✗"), path, styles.DimStyle.Render(err.Error()))
					continue
				}
				fmt.Fprintf(w, "%s %s\n", styles.SuccessStyle.Render("✓"), path)
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d files failed", failed, len(args))
			}
			return nil
		},
	}
}

func newBrowseCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "browse <file>",
		Short: "Browse the headlines of an org file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			o, err := a.load(args[0])
			if err != nil {
				return err
			}
			idMap, err := a.cfg.LoadIDMap()
			if err != nil {
				return err
			}

			preview := func(id arena.NodeID, width int) (string, error) {
				return tui.Preview(o, id, width, idMap)
			}

			m := tui.InitBrowseModel(preview)
			p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithAltScreen())

			go p.Send(tui.BrowseMsg{
				Data: &tui.BrowseData{
					File: filepath.Base(args[0]),
					Rows: tui.Outline(o),
				},
			})

			if _, err := p.Run(); err != nil {
				return fmt.Errorf("browser failed: %w", err)
			}
			return nil
		},
	}
}
