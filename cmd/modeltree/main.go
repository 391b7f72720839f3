// Package main provides the modeltree command-line tool.
package main

import (
	"os"

	"github.com/modeltree/modeltree/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
