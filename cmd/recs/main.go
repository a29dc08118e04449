// Command recs runs record-processing operations over JSON lines.
//
//	recs sort -n size data.jsonl
//	recs collate -k user -a count -a sum,bytes < events.jsonl
//	recs chain head -n 100 \| shell jq -c . \| tail -n 5
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kbukum/recskit/errors"
	"github.com/kbukum/recskit/operation"
	"github.com/kbukum/recskit/version"
)

var rootCmd = &cobra.Command{
	Use:   "recs",
	Short: "Record stream toolkit",
	Long: `recs reads newline-delimited JSON records from files or standard input,
runs one operation over them and writes the results to standard output.

Configuration is read from config.yml (or the file named by RECS_CONFIG)
and RECS_* environment variables.`,
	Version:       version.Get().Short(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "recs:", err)
		os.Exit(exitCode(err))
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	for _, e := range operation.Registry.Entries() {
		rootCmd.AddCommand(operationCommand(e.Name(), e.Names()[1:], e.Help()))
	}
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(versionCmd)
}

// operationCommand leaves flag parsing to the operation itself.
func operationCommand(name string, aliases []string, short string) *cobra.Command {
	return &cobra.Command{
		Use:                name + " [options] [files...]",
		Aliases:            aliases,
		Short:              short,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.shutdown()
			return a.run(append([]string{name}, args...))
		},
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		for _, l := range version.Get().Lines() {
			fmt.Fprintln(cmd.OutOrStdout(), l)
		}
	},
}

func exitCode(err error) int {
	switch {
	case errors.HasCode(err, errors.ErrCodeInvalidInput), errors.HasCode(err, errors.ErrCodeNotFound):
		return 2
	default:
		return 1
	}
}
