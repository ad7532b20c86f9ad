package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a clipboard",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	if err := newClient().Delete(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("failed to delete clipboard: %w", err)
	}
	return nil
}
