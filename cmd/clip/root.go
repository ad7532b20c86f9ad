package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dreamware/clipd/internal/client"
)

const defaultServer = "http://localhost:8080"

var (
	// serverFlag is the CLI --server flag value
	serverFlag string
)

var rootCmd = &cobra.Command{
	Use:   "clip",
	Short: "clip - shared clipboard client",
	Long: `clip is the command-line client for a clipd shared-clipboard server.

A clipboard is a text document addressed by an opaque identifier; anyone
holding the identifier can read and overwrite it. clip creates, reads,
and updates clipboards over the server's HTTP API.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverFlag, "server", "",
		"clipd server base URL (default: CLIP_SERVER or "+defaultServer+")")
}

// resolveServer determines the server base URL.
// Precedence: --server flag > CLIP_SERVER env var > default
func resolveServer() string {
	if serverFlag != "" {
		return serverFlag
	}
	if env := os.Getenv("CLIP_SERVER"); env != "" {
		return env
	}
	return defaultServer
}

func newClient() *client.Client {
	return client.New(resolveServer())
}
