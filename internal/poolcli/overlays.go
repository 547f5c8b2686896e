package poolcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirouche/ouverture/internal/pool"
)

// OverlaysResult is the payload printed by the overlays command.
type OverlaysResult struct {
	FunctionHash string                `json:"function_hash"`
	Language     string                `json:"language"`
	Overlays     []pool.OverlaySummary `json:"overlays"`
}

// NewOverlaysCommand creates the overlays command.
func NewOverlaysCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "overlays <hash> <language>",
		Short:         "List a function's overlays in one language",
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlays(rootOpts, args[0], args[1], cmd)
		},
	}

	return cmd
}

func runOverlays(opts *RootOptions, functionHash, language string, cmd *cobra.Command) error {
	formatter := NewOutputFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	p, err := pool.Open(opts.Root, pool.WithAuthor(opts.Author))
	if err != nil {
		return reportPoolError(formatter, err)
	}
	defer p.Close()

	overlays, err := p.ListOverlays(functionHash, language)
	if err != nil {
		return reportPoolError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(OverlaysResult{FunctionHash: functionHash, Language: language, Overlays: overlays})
	}
	for _, overlay := range overlays {
		if overlay.Comment != "" {
			fmt.Fprintf(formatter.Writer, "%s  %s\n", overlay.OverlayHash, overlay.Comment)
		} else {
			fmt.Fprintln(formatter.Writer, overlay.OverlayHash)
		}
	}
	return nil
}
