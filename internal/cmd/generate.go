package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"themesmith/internal/commands"
	"themesmith/internal/domain"
)

var (
	generateName        string
	generateDescription string
	generateVersion     string
	generatePublisher   string
	generateOutput      string
)

var generateCmd = &cobra.Command{
	Use:   "generate <theme-file>",
	Short: "Generate an editor extension bundle from a theme file",
	Long: `Convert a terminal color scheme into an installable editor extension:
a manifest, a color theme document, and the packaging scaffolding around them.

By default the bundle is written to a directory named after the theme in the
current working directory. Use the --output flag to choose another location.`,
	Args: cobra.ExactArgs(1),
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)

	generateCmd.Flags().StringVarP(&generateName, "name", "n", "", "theme display name (required)")
	generateCmd.Flags().StringVarP(&generateDescription, "description", "d", "", "theme description")
	generateCmd.Flags().StringVar(&generateVersion, "theme-version", "", "theme version (default: 0.0.1)")
	generateCmd.Flags().StringVarP(&generatePublisher, "publisher", "p", "", "publisher name")
	generateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "output directory for the bundle")

	_ = generateCmd.MarkFlagRequired("name")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.Close()

	generate := commands.NewGenerateCommand(application.Files, application.Recent, application.Logger)
	result, err := generate.Execute(context.Background(), commands.GenerateRequest{
		Input: domain.ThemeInput{
			Name:        generateName,
			Description: generateDescription,
			Version:     generateVersion,
			Publisher:   generatePublisher,
			OutputPath:  generateOutput,
		},
		ThemePath: args[0],
		Progress:  application.Progress.Handler(),
	})
	if err != nil {
		return err
	}

	fmt.Printf("Generated extension bundle: %s\n", result.BundleDir)
	for _, artifact := range result.Artifacts {
		fmt.Printf("  %s\n", artifact)
	}
	return nil
}
