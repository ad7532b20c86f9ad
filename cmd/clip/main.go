// Package main implements clip, the command-line client for a clipd
// server.
//
// Example usage:
//
//	echo "hello" | clip new          # Create a clipboard from stdin
//	clip get <id>                    # Print a clipboard's content
//	clip set <id> "new content"      # Replace a clipboard's content
//	tail -f app.log | clip pipe <id> # Stream stdin with debounced saves
//	clip ls                          # List clipboards on the server
//	clip health --watch              # Monitor server health
//
// The server address comes from --server or the CLIP_SERVER environment
// variable (default http://localhost:8080).
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
