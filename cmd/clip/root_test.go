package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dreamware/clipd/internal/clipboard"
)

// TestResolveServer tests server address precedence
func TestResolveServer(t *testing.T) {
	tests := []struct {
		name     string
		flag     string
		env      string
		expected string
	}{
		{
			name:     "default when nothing set",
			expected: defaultServer,
		},
		{
			name:     "environment variable",
			env:      "http://env:9090",
			expected: "http://env:9090",
		},
		{
			name:     "flag beats environment",
			flag:     "http://flag:7070",
			env:      "http://env:9090",
			expected: "http://flag:7070",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldFlag := serverFlag
			t.Cleanup(func() { serverFlag = oldFlag })

			serverFlag = tt.flag
			if tt.env != "" {
				t.Setenv("CLIP_SERVER", tt.env)
			} else {
				t.Setenv("CLIP_SERVER", "")
			}

			assert.Equal(t, tt.expected, resolveServer())
		})
	}
}

// newFakeClipd runs a minimal clipd API backed by a map and points the
// CLI's --server flag at it.
func newFakeClipd(t *testing.T) map[string]*clipboard.Clipboard {
	t.Helper()

	clips := make(map[string]*clipboard.Clipboard)
	mux := http.NewServeMux()

	mux.HandleFunc("/api/clips", func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost:
			var req struct {
				Content string `json:"content"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			clip, err := clipboard.New(req.Content)
			require.NoError(t, err)
			clips[clip.ID] = clip
			w.WriteHeader(http.StatusCreated)
			json.NewEncoder(w).Encode(clip)
		case http.MethodGet:
			summaries := make([]clipboard.Summary, 0, len(clips))
			for _, clip := range clips {
				summaries = append(summaries, clip.Summary())
			}
			json.NewEncoder(w).Encode(map[string]any{
				"clips": summaries,
				"count": len(summaries),
			})
		}
	})

	mux.HandleFunc("/api/clips/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/clips/")
		clip, ok := clips[id]
		switch r.Method {
		case http.MethodGet:
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			json.NewEncoder(w).Encode(clip)
		case http.MethodPut:
			if !ok {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			var req struct {
				Content string `json:"content"`
			}
			require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			clip.Content = req.Content
			clip.UpdatedAt = time.Now().UTC()
			json.NewEncoder(w).Encode(clip)
		case http.MethodDelete:
			delete(clips, id)
			w.WriteHeader(http.StatusNoContent)
		}
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)

	oldFlag := serverFlag
	serverFlag = ts.URL
	t.Cleanup(func() { serverFlag = oldFlag })

	return clips
}

// runCommand executes a CLI command with fresh args
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	return rootCmd.Execute()
}

// TestNewCommand tests clipboard creation from a file
func TestNewCommand(t *testing.T) {
	clips := newFakeClipd(t)

	path := filepath.Join(t.TempDir(), "note.txt")
	require.NoError(t, os.WriteFile(path, []byte("from a file"), 0o644))

	require.NoError(t, runCommand(t, "new", path))

	require.Len(t, clips, 1)
	for _, clip := range clips {
		assert.Equal(t, "from a file", clip.Content)
	}
}

// TestSetAndRmCommands tests update and delete round trips
func TestSetAndRmCommands(t *testing.T) {
	clips := newFakeClipd(t)

	clip, err := clipboard.New("before")
	require.NoError(t, err)
	clips[clip.ID] = clip

	require.NoError(t, runCommand(t, "set", clip.ID, "after"))
	assert.Equal(t, "after", clips[clip.ID].Content)

	require.NoError(t, runCommand(t, "rm", clip.ID))
	assert.Empty(t, clips)
}

// TestGetCommandNotFound tests the unknown-ID error path
func TestGetCommandNotFound(t *testing.T) {
	newFakeClipd(t)

	err := runCommand(t, "get", "no-such-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

// TestHealthCommand tests the one-shot health check
func TestHealthCommand(t *testing.T) {
	newFakeClipd(t)
	assert.NoError(t, runCommand(t, "health"))
}
