package cmd

import (
	"testing"

	"github.com/spf13/cobra"
)

func TestRootCommandStructure(t *testing.T) {
	if rootCmd.Use != "themesmith" {
		t.Errorf("Expected Use to be 'themesmith', got: %s", rootCmd.Use)
	}
	if rootCmd.Short == "" {
		t.Error("Expected Short description to be set")
	}
	if rootCmd.Runnable() {
		t.Error("Expected root command to only have subcommands")
	}
}

func TestSubcommandsRegistered(t *testing.T) {
	expected := []string{"validate <theme-file>", "inspect <theme-file>", "generate <theme-file>", "recent", "version"}

	found := make(map[string]bool)
	for _, cmd := range rootCmd.Commands() {
		found[cmd.Use] = true
	}

	for _, use := range expected {
		if !found[use] {
			t.Errorf("Expected command %q to be registered", use)
		}
	}
}

func TestSetVersionInfo(t *testing.T) {
	SetVersionInfo("1.0.0", "abc123", "2026-01-01", "ci")
	defer SetVersionInfo("dev", "none", "unknown", "unknown")

	if version != "1.0.0" || commit != "abc123" || date != "2026-01-01" || builtBy != "ci" {
		t.Error("SetVersionInfo did not update build information")
	}
}

func TestGenerateRequiresName(t *testing.T) {
	if generateCmd.Flags().Lookup("name") == nil {
		t.Fatal("Expected generate command to define --name")
	}
	annotations := generateCmd.Flags().Lookup("name").Annotations
	if _, required := annotations[cobra.BashCompOneRequiredFlag]; !required {
		t.Error("Expected --name to be marked required")
	}
}
