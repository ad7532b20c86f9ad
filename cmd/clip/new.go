package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var newEmpty bool

var newCmd = &cobra.Command{
	Use:   "new [file]",
	Short: "Create a clipboard",
	Long: `Create a clipboard on the server and print its ID and share URL.

Content comes from the named file, or from stdin when no file is given.
Use --empty to create a blank clipboard without reading anything.

Examples:
  echo "hello" | clip new
  clip new notes.txt
  clip new --empty`,
	Args: cobra.MaximumNArgs(1),
	RunE: runNew,
}

func init() {
	newCmd.Flags().BoolVar(&newEmpty, "empty", false, "Create a blank clipboard")
	rootCmd.AddCommand(newCmd)
}

func runNew(cmd *cobra.Command, args []string) error {
	content, err := readContent(args)
	if err != nil {
		return err
	}

	c := newClient()
	clip, err := c.Create(cmd.Context(), content)
	if err != nil {
		return fmt.Errorf("failed to create clipboard: %w", err)
	}

	fmt.Println(clip.ID)
	fmt.Fprintln(os.Stderr, "share:", c.ShareURL(clip.ID))
	return nil
}

// readContent reads clipboard content from the file argument or stdin.
func readContent(args []string) (string, error) {
	if newEmpty {
		return "", nil
	}
	if len(args) == 1 {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		return string(data), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}
