// Package cli provides the command-line interface for modeltree.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"

	modeltree "github.com/modeltree/modeltree"
	"github.com/modeltree/modeltree/expr"
	"github.com/modeltree/modeltree/i18n"
)

// Version information (set at build time).
var (
	Version = "0.1.0"
)

var opts *Options

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "modeltree",
		Short: "modeltree - formula parsing and validation",
		Long: `modeltree parses formulas into typed expression trees, validates the
fields they reference, and prints them back in canonical form.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}
			var err error
			opts, err = loadOptions(cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}
			i18n.SetLanguage(opts.Locale)
			return nil
		},
	}

	rootCmd.PersistentFlags().String("locale", "en", "message language (en/ja)")
	rootCmd.PersistentFlags().StringSlice("fields", nil, "allowed field names for check")
	rootCmd.PersistentFlags().Bool("debug", false, "dump the typed tree")

	rootCmd.AddCommand(newFmtCmd())
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newInspectCmd())
	return rootCmd
}

// Execute runs the root command and maps failures to exit codes.
func Execute() int {
	if err := NewRootCmd().Execute(); err != nil {
		if e, ok := modeltree.AsError(err); ok {
			fmt.Fprintf(os.Stderr, "error: %s at %s: %s\n", e.Code, e.Path.Pointer(), e.Message)
			return 1
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 2
	}
	return 0
}

// readFormula takes the formula from args or, when absent, from stdin.
func readFormula(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", err
	}
	src := strings.TrimSpace(string(b))
	if src == "" {
		return "", fmt.Errorf("no formula given (argument or stdin)")
	}
	return src, nil
}

func newFmtCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fmt [formula]",
		Short: "Parse a formula and print its canonical form",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readFormula(cmd, args)
			if err != nil {
				return err
			}
			parsed, err := expr.ParseFormula(cmd.Context(), src)
			if err != nil {
				return err
			}
			out, err := expr.WriteFormula(parsed)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [formula]",
		Short: "Validate a formula's field references against --fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readFormula(cmd, args)
			if err != nil {
				return err
			}
			parsed, err := expr.ParseFormula(cmd.Context(), src)
			if err != nil {
				return err
			}
			if err := expr.FieldValidator(opts.Fields).Visit(parsed); err != nil {
				return err
			}
			used, err := expr.CollectFields(parsed)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "ok: %d field reference(s)\n", len(used))
			return nil
		},
	}
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [formula]",
		Short: "Parse a formula and dump its serialized document",
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := readFormula(cmd, args)
			if err != nil {
				return err
			}
			parsed, err := expr.ParseFormula(cmd.Context(), src)
			if err != nil {
				return err
			}
			if opts.Debug {
				spew.Fdump(cmd.OutOrStdout(), parsed.Serialize())
				return nil
			}
			out, err := modeltree.EncodeJSON(parsed)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
}
