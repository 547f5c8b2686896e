package poolcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirouche/ouverture/internal/pool"
)

// ValidationResult holds validation results.
type ValidationResult struct {
	Valid  bool                   `json:"valid"`
	Errors []pool.ValidationError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <hash>",
		Short: "Re-hash a function and all of its overlays",
		Long: `Re-derive every hash stored under a function's directory and compare it
against the hash embedded in its path. Reports all faults found.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, functionHash string, cmd *cobra.Command) error {
	formatter := NewOutputFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	p, err := pool.Open(opts.Root, pool.WithAuthor(opts.Author))
	if err != nil {
		return reportPoolError(formatter, err)
	}
	defer p.Close()

	formatter.VerboseLog("validating function", "hash", functionHash)

	faults, err := p.Validate(functionHash)
	if err != nil {
		return reportPoolError(formatter, err)
	}

	if len(faults) == 0 {
		if formatter.Format == "json" {
			return formatter.Success(ValidationResult{Valid: true})
		}
		fmt.Fprintln(formatter.Writer, "ok")
		return nil
	}

	if formatter.Format == "json" {
		_ = formatter.Error(faults[0].Code, faults[0].Message, ValidationResult{Valid: false, Errors: faults})
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d fault(s)", len(faults)))
	}

	fmt.Fprintf(formatter.Writer, "validation failed with %d fault(s)\n", len(faults))
	for _, fault := range faults {
		fmt.Fprintf(formatter.Writer, "  %s\n", fault.Error())
	}
	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d fault(s)", len(faults)))
}
