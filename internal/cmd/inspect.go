package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"themesmith/internal/commands"
)

var inspectHash bool

var inspectCmd = &cobra.Command{
	Use:   "inspect <theme-file>",
	Short: "Show a theme file's metadata and parsed colors",
	Long:  `Inspect a theme file: size, timestamps, optional content hash, and every color definition it contains.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().BoolVar(&inspectHash, "hash", false, "include a content hash")
}

func runInspect(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.Close()

	inspect := commands.NewInspectCommand(application.Files, application.Logger)
	result, err := inspect.Execute(context.Background(), commands.InspectRequest{
		Path:        args[0],
		IncludeHash: inspectHash,
	})
	if err != nil {
		return err
	}

	fmt.Printf("%s\n", result.Metadata.Path)
	fmt.Printf("  size: %d bytes\n", result.Metadata.Size)
	fmt.Printf("  modified: %s\n", result.Metadata.ModTime.Format("2006-01-02 15:04:05"))
	if result.Metadata.Hash != "" {
		fmt.Printf("  hash: %s\n", result.Metadata.Hash)
	}

	keys := make([]string, 0, len(result.Theme.Colors))
	for key := range result.Theme.Colors {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	fmt.Printf("\nColors (%d):\n", len(keys))
	for _, key := range keys {
		fmt.Printf("  %-20s %s\n", key, result.Theme.Colors[key])
	}

	if len(result.Theme.InvalidLines) > 0 {
		fmt.Printf("\nUnparseable lines (%d):\n", len(result.Theme.InvalidLines))
		for _, line := range result.Theme.InvalidLines {
			fmt.Printf("  %s\n", line)
		}
	}
	return nil
}
