package cmd

import (
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Print the generated document without writing it",
	Long: `Fetch the account's repositories, resolve languages and fork parents,
and print the rendered Markdown to stdout. Nothing is written or committed.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig(cmd, true)
		if err != nil {
			return err
		}

		gen, err := newGenerator(cmd.Context(), cfg, logger, pipelineOptions{})
		if err != nil {
			return err
		}

		doc, err := gen.Build(cmd.Context())
		if err != nil {
			return err
		}

		_, err = cmd.OutOrStdout().Write(doc.Content)

		return err
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
