package poolcli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amirouche/ouverture/internal/pool"
)

// LanguagesResult is the payload printed by the languages command.
type LanguagesResult struct {
	FunctionHash string   `json:"function_hash"`
	Languages    []string `json:"languages"`
}

// NewLanguagesCommand creates the languages command.
func NewLanguagesCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "languages <hash>",
		Short:         "List the languages a function is presented in",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLanguages(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runLanguages(opts *RootOptions, functionHash string, cmd *cobra.Command) error {
	formatter := NewOutputFormatter(opts, cmd.OutOrStdout(), cmd.ErrOrStderr())

	p, err := pool.Open(opts.Root, pool.WithAuthor(opts.Author))
	if err != nil {
		return reportPoolError(formatter, err)
	}
	defer p.Close()

	languages, err := p.ListLanguages(functionHash)
	if err != nil {
		return reportPoolError(formatter, err)
	}

	if formatter.Format == "json" {
		return formatter.Success(LanguagesResult{FunctionHash: functionHash, Languages: languages})
	}
	for _, language := range languages {
		fmt.Fprintln(formatter.Writer, language)
	}
	return nil
}
