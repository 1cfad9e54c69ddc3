package main

import (
	"fmt"
	"os"

	"github.com/gerunddev/orgtree/internal/commands"
	"github.com/gerunddev/orgtree/styles"
)

const version = "0.1.0"

func main() {
	if err := commands.NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.ErrorStyle.Render("✗ "+err.Error()))
		os.Exit(1)
	}
}
