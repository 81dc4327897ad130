package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// executeCommand runs the root command with args and captures stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	rootCmd := NewRootCommand()
	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(args)

	err := rootCmd.Execute()
	return stdout.String(), stderr.String(), err
}

// createTree writes files (relative path -> content) under a new temp dir and
// returns its path.
func createTree(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for name, content := range files {
		path := filepath.Join(root, name)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create file: %v", err)
		}
	}
	return root
}

// treeArgs returns the flags pointing a command at root, with the dump in
// root/output.txt and paths relative to root.
func treeArgs(root string) []string {
	return []string{
		"--root", root,
		"--base", root,
		"--output", filepath.Join(root, "output.txt"),
		"--self-name", "aggregator.py",
	}
}

// entry renders the expected output block for one file.
func entry(rel, content string) string {
	return "------" + rel + "\n" + content + "\n" + strings.Repeat("=", 80) + "\n\n"
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}
