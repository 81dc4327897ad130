package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListCommand_PrintsSelectedFiles(t *testing.T) {
	root := createTree(t, map[string]string{
		"z.go":          "package z",
		"a/b.txt":       "b",
		"a/skip.md":     "skip",
		"aggregator.py": "self",
		"Upper.JS":      "x",
	})

	stdout, _, err := executeCommand(t, append([]string{"list"}, treeArgs(root)...)...)
	require.NoError(t, err)

	want := strings.Join([]string{
		"Upper.JS",
		filepath.Join("a", "b.txt"),
		"z.go",
	}, "\n") + "\n"
	assert.Equal(t, want, stdout)
}

func TestListCommand_MatchesRunOrder(t *testing.T) {
	root := createTree(t, map[string]string{
		"b.c":       "b",
		"a/x.h":     "x",
		"a/y/z.cpp": "z",
		"c.cs":      "c",
	})

	stdout, _, err := executeCommand(t, append([]string{"list"}, treeArgs(root)...)...)
	require.NoError(t, err)

	_, _, err = executeCommand(t, append([]string{"run"}, treeArgs(root)...)...)
	require.NoError(t, err)
	dump := readFile(t, filepath.Join(root, "output.txt"))

	var markers []string
	for _, line := range strings.Split(dump, "\n") {
		if strings.HasPrefix(line, "------") {
			markers = append(markers, strings.TrimPrefix(line, "------"))
		}
	}
	assert.Equal(t, markers, strings.Split(strings.TrimSuffix(stdout, "\n"), "\n"))
}

func TestListCommand_WritesNothing(t *testing.T) {
	root := createTree(t, map[string]string{"a.go": "package a"})

	_, _, err := executeCommand(t, append([]string{"list"}, treeArgs(root)...)...)
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(root, "output.txt"))
}

func TestListCommand_EmptyTree(t *testing.T) {
	root := createTree(t, map[string]string{"readme.md": "nothing to see"})

	stdout, _, err := executeCommand(t, append([]string{"list"}, treeArgs(root)...)...)
	require.NoError(t, err)
	assert.Empty(t, stdout)
}
