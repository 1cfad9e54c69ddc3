package commands

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gerunddev/orgtree/export"
	"github.com/gerunddev/orgtree/org"
)

// load reads and parses an org file with the configured parser settings.
func (a *app) load(path string) (*org.Org, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		a.log.FileError(path, err)
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	start := time.Now()
	o := org.ParseWithConfig(string(content), a.parser)
	a.log.ParseCompleted(path, o.Arena().Len(), time.Since(start))
	return o, nil
}

// render exports the file at path through h and writes the result to out,
// or to the command's stdout when out is empty. Nothing is written if the
// handler fails.
func (a *app) render(cmd *cobra.Command, path, format, out string, h export.Handler) error {
	o, err := a.load(path)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := o.Render(&buf, h); err != nil {
		a.log.RenderFailed(path, format, err)
		return err
	}

	if err := writeOutput(cmd.OutOrStdout(), out, buf.Bytes()); err != nil {
		return err
	}
	a.log.RenderCompleted(path, format, buf.Len())
	return nil
}

func writeOutput(stdout io.Writer, out string, data []byte) error {
	if out == "" {
		_, err := stdout.Write(data)
		return err
	}
	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", out, err)
	}
	return nil
}
