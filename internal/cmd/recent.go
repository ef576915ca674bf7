package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"themesmith/internal/commands"
)

var recentClear bool

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently converted theme files",
	Long:  `List the theme files converted most recently. Files that no longer exist are dropped from the list.`,
	RunE:  runRecent,
}

func init() {
	rootCmd.AddCommand(recentCmd)

	recentCmd.Flags().BoolVar(&recentClear, "clear", false, "clear the recent files list")
}

func runRecent(cmd *cobra.Command, args []string) error {
	application, err := newApp()
	if err != nil {
		return err
	}
	defer application.Close()

	recent := commands.NewRecentCommand(application.Recent, application.Logger)
	paths, err := recent.Execute(context.Background(), commands.RecentRequest{Clear: recentClear})
	if err != nil {
		return err
	}

	if recentClear {
		fmt.Println("Recent files cleared.")
		return nil
	}

	if len(paths) == 0 {
		fmt.Println("No recent files.")
		return nil
	}

	for i, path := range paths {
		fmt.Printf("%d. %s\n", i+1, path)
	}
	return nil
}
