package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamware/clipd/internal/client"
)

var setCmd = &cobra.Command{
	Use:   "set <id> [content]",
	Short: "Replace a clipboard's content",
	Long: `Replace a clipboard's content with the given argument, or with
stdin when no content argument is given.

Examples:
  clip set 3f2a... "new content"
  cat notes.txt | clip set 3f2a...`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runSet,
}

func init() {
	rootCmd.AddCommand(setCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	var content string
	if len(args) == 2 {
		content = args[1]
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
		content = string(data)
	}

	clip, err := newClient().Update(cmd.Context(), args[0], content)
	if err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return fmt.Errorf("clipboard %s not found", args[0])
		}
		return fmt.Errorf("failed to update clipboard: %w", err)
	}

	fmt.Fprintf(os.Stderr, "saved %d bytes at %s\n",
		len(clip.Content), clip.UpdatedAt.Local().Format("15:04:05"))
	return nil
}
