package commands

import (
	"github.com/spf13/cobra"

	"github.com/gerunddev/orgtree/export"
	"github.com/gerunddev/orgtree/styles"
)

func newTreeCmd(a *app) *cobra.Command {
	var out string
	var plain bool

	cmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Print the element tree of an org file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h := export.NewTreeHandler()
			if !plain && out == "" {
				h.Style = styles.Kind
			}
			return a.render(cmd, args[0], "tree", out, h)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colors")
	return cmd
}

func newHTMLCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "html <file>",
		Short: "Export an org file as HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, args[0], "html", out, export.NewHTMLHandler())
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func newOrgCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "org <file>",
		Short: "Re-emit an org file from its parsed tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd, args[0], "org", out, export.NewOrgHandler())
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}

func newMarkdownCmd(a *app) *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:     "md <file>",
		Aliases: []string{"markdown"},
		Short:   "Export an org-roam note as Obsidian markdown",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			idMap, err := a.cfg.LoadIDMap()
			if err != nil {
				return err
			}
			h := export.NewMarkdownHandler(idMap)
			h.DoneKeywords = a.cfg.DoneKeywords
			return a.render(cmd, args[0], "md", out, h)
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "write to file instead of stdout")
	return cmd
}
