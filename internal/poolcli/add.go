package poolcli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/amirouche/ouverture/internal/pool"
)

// AddResult is the payload printed after a successful store.
type AddResult struct {
	FunctionHash string `json:"function_hash"`
	OverlayHash  string `json:"overlay_hash"`
	Locator      string `json:"locator"`
}

// NewAddCommand creates the add command.
func NewAddCommand(rootOpts *RootOptions) *cobra.Command {
	var language string
	var comment string

	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Store a source file in the pool",
		Long: `Store a single-function source file in the pool.

The file's logic is normalized and hashed; its naming, docstring, and pool
import aliases are stored as a presentation overlay for the given language.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAdd(rootOpts, args[0], language, comment, cmd)
		},
	}

	cmd.Flags().StringVar(&language, "language", "", "natural-language tag for the overlay (required)")
	cmd.Flags().StringVar(&comment, "comment", "", "free-form comment describing the variant")
	_ = cmd.MarkFlagRequired("language")

	return cmd
}

func runAdd(opts *RootOptions, path, language, comment string, cmd *cobra.Command) error {
	formatter := NewOutputFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	source, err := os.ReadFile(path)
	if err != nil {
		_ = formatter.Error("io_error", fmt.Sprintf("read %s: %v", path, err), nil)
		return NewExitError(ExitCommandError, fmt.Sprintf("read %s: %v", path, err))
	}

	p, err := pool.Open(opts.Root, pool.WithAuthor(opts.Author))
	if err != nil {
		return reportPoolError(formatter, err)
	}
	defer p.Close()

	formatter.VerboseLog("storing source", "file", path, "language", language, "bytes", len(source))

	functionHash, overlayHash, err := p.Store(source, language, comment)
	if err != nil {
		return reportPoolError(formatter, err)
	}

	result := AddResult{
		FunctionHash: functionHash,
		OverlayHash:  overlayHash,
		Locator:      fmt.Sprintf("%s@%s@%s", functionHash, language, overlayHash),
	}
	if formatter.Format == "json" {
		return formatter.Success(result)
	}
	fmt.Fprintln(formatter.Writer, result.Locator)
	return nil
}
