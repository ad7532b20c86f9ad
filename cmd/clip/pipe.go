package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dreamware/clipd/internal/session"
)

var pipeDelay time.Duration

var pipeCmd = &cobra.Command{
	Use:   "pipe [id]",
	Short: "Stream stdin into a clipboard",
	Long: `Stream stdin into a clipboard line by line. Each line is appended
to the clipboard's content; saves are debounced so a fast producer
results in a handful of uploads rather than one per line.

Without an ID a fresh clipboard is created and its ID printed first.

Examples:
  tail -f app.log | clip pipe
  some-command 2>&1 | clip pipe 3f2a...`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPipe,
}

func init() {
	pipeCmd.Flags().DurationVar(&pipeDelay, "delay", session.DefaultSaveDelay,
		"Debounce quiet period between saves")
	rootCmd.AddCommand(pipeCmd)
}

func runPipe(cmd *cobra.Command, args []string) error {
	c := newClient()
	ctx := cmd.Context()

	var (
		sess *session.Session
		err  error
	)
	if len(args) == 1 {
		sess, err = session.Open(ctx, c, args[0], pipeDelay, zap.NewNop())
	} else {
		sess, err = session.Create(ctx, c, pipeDelay, zap.NewNop())
		if err == nil {
			fmt.Println(sess.ID())
			fmt.Fprintln(os.Stderr, "share:", c.ShareURL(sess.ID()))
		}
	}
	if err != nil {
		return fmt.Errorf("failed to open clipboard session: %w", err)
	}
	defer sess.Close()

	sess.SetOnStatus(func(status session.Status) {
		if status.State == session.StateError {
			fmt.Fprintln(os.Stderr, "save failed:", status.Err)
		}
	})

	var buf strings.Builder
	buf.WriteString(sess.Content())
	if buf.Len() > 0 && !strings.HasSuffix(buf.String(), "\n") {
		buf.WriteString("\n")
	}

	scanner := bufio.NewScanner(os.Stdin)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		buf.WriteString(scanner.Text())
		buf.WriteString("\n")
		sess.SetContent(buf.String())
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read stdin: %w", err)
	}

	// Final flush happens in Close; surface its outcome here so a
	// failed last save is not silent.
	sess.Flush()
	if status := sess.Status(); status.State == session.StateError {
		return fmt.Errorf("final save failed: %w", status.Err)
	}
	return nil
}
