package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"themesmith/internal/commands"
)

var validateCmd = &cobra.Command{
	Use:   "validate <theme-file>",
	Short: "Check whether a theme file can be converted",
	Long:  `Validate a terminal color scheme file: path safety, size, and content structure.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.Close()

	validate := commands.NewValidateCommand(application.Files, application.Logger)
	result, err := validate.Execute(context.Background(), commands.ValidateRequest{Path: args[0]})
	if err != nil {
		return err
	}

	for _, warning := range result.Warnings {
		fmt.Printf("warning: %s\n", warning)
	}

	if !result.IsValid {
		return fmt.Errorf("%s is not convertible: %s", args[0], result.Error)
	}

	fmt.Printf("%s is convertible\n", args[0])
	return nil
}
