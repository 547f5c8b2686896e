package poolcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirouche/ouverture/internal/pool"
)

// GetResult is the payload printed for a reconstructed function.
type GetResult struct {
	FunctionHash string `json:"function_hash"`
	Language     string `json:"language"`
	OverlayHash  string `json:"overlay_hash,omitempty"`
	Source       string `json:"source"`
}

// NewGetCommand creates the get command.
func NewGetCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get <hash@language[@overlay]>",
		Short: "Reconstruct a function in a language",
		Long: `Reconstruct human-readable source text for a stored function.

The locator must carry a language tag. When the language holds several
overlays, the overlay hash must be given too; the error lists the choices
in json format, and in text format only with --verbose.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runGet(opts *RootOptions, locatorText string, cmd *cobra.Command) error {
	formatter := NewOutputFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	locator, err := pool.ParseLocator(locatorText)
	if err != nil {
		return reportPoolError(formatter, err)
	}
	if locator.Language == "" {
		_ = formatter.Error(string(pool.KindInvalidLocator), "locator must carry a language tag to reconstruct source", nil)
		return NewExitError(ExitCommandError, "locator must carry a language tag")
	}

	p, err := pool.Open(opts.Root, pool.WithAuthor(opts.Author))
	if err != nil {
		return reportPoolError(formatter, err)
	}
	defer p.Close()

	source, err := p.Denormalize(locator.FunctionHash, locator.Language, locator.OverlayHash)
	if err != nil {
		return reportPoolError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(GetResult{
			FunctionHash: locator.FunctionHash,
			Language:     locator.Language,
			OverlayHash:  locator.OverlayHash,
			Source:       source,
		})
	}
	fmt.Fprint(formatter.Writer, source)
	return nil
}
