package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamware/clipd/internal/client"
)

var getCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Print a clipboard's content",
	Args:  cobra.ExactArgs(1),
	RunE:  runGet,
}

func init() {
	rootCmd.AddCommand(getCmd)
}

func runGet(cmd *cobra.Command, args []string) error {
	clip, err := newClient().Get(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("clipboard %s not found", args[0])
		}
		return fmt.Errorf("failed to get clipboard: %w", err)
	}

	_, err = os.Stdout.WriteString(clip.Content)
	return err
}
