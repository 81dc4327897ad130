// Package aggregate concatenates the source files of a directory tree into a
// single text dump.
//
// Each included file becomes one entry:
//
//	------<path relative to base>
//	<file content>
//	================================================================================
//
// followed by a blank line. A file that cannot be read still gets its marker
// and divider, with "[Error reading file: <reason>]" in place of the content.
package aggregate

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/harrison/treedump/internal/fileutil"
)

const (
	// MarkerPrefix introduces every entry, immediately followed by the relative path.
	MarkerPrefix = "------"
	// DividerWidth is the number of '=' characters in the divider line.
	DividerWidth = 80
)

var (
	extensions = []string{
		".txt", ".dart", ".c", ".py", ".java", ".js", ".cpp",
		".h", ".cs", ".rb", ".go", ".ts", ".yaml", ".xml",
	}

	divider = strings.Repeat("=", DividerWidth)
)

// Extensions returns a copy of the extension allow-list.
func Extensions() []string {
	return append([]string(nil), extensions...)
}

// Divider returns the line written after every entry, without newlines.
func Divider() string {
	return divider
}

// Logger receives progress messages from a run. *logger.ConsoleLogger
// satisfies it.
type Logger interface {
	LogDebug(message string)
	LogWarn(message string)
}

type nopLogger struct{}

func (nopLogger) LogDebug(string) {}
func (nopLogger) LogWarn(string)  {}

// Options tunes a run beyond root, base and sink.
type Options struct {
	// SelfName is a file name that is never aggregated (exact match).
	SelfName string
	// ExcludePaths are files that are never aggregated, typically the output
	// file of the run and its lock file.
	ExcludePaths []string
	// Logger receives per-entry messages. Nil discards them.
	Logger Logger
}

// Entry is one file selected for aggregation.
type Entry struct {
	// Path is the absolute path of the file.
	Path string
	// RelPath is Path relative to the base directory, as written in the marker.
	RelPath string
}

// Plan is the ordered list of entries a run will write.
type Plan struct {
	Entries []Entry
	// WalkErrors are unreadable entries below the root; their subtrees are skipped.
	WalkErrors []error
}

// Summary describes a completed run.
type Summary struct {
	RunID      string
	Root       string
	Included   int      // entries written, including those in Failed
	Failed     []string // relative paths rendered with an error placeholder
	WalkErrors []error
}

// Aggregator renders a directory tree into a single text stream.
type Aggregator struct {
	root   string
	base   string
	opts   Options
	logger Logger
}

// New creates an Aggregator that walks root and writes paths relative to base.
func New(root, base string, opts Options) *Aggregator {
	log := opts.Logger
	if log == nil {
		log = nopLogger{}
	}
	return &Aggregator{
		root:   absPath(root),
		base:   absPath(base),
		opts:   opts,
		logger: log,
	}
}

// Aggregate walks root, keeps files whose extension is in the allow-list and
// whose name is not selfName, and writes them to sink with paths relative to
// base.
func Aggregate(root, base string, sink io.Writer, selfName string) (*Summary, error) {
	return New(root, base, Options{SelfName: selfName}).Run(sink)
}

// Scan selects the entries without reading any file content.
func (a *Aggregator) Scan() (*Plan, error) {
	result, err := fileutil.ScanDirectory(a.root, fileutil.ScanOptions{
		Extensions:   extensions,
		Recursive:    true,
		ExcludeNames: []string{a.opts.SelfName},
		ExcludePaths: a.opts.ExcludePaths,
	})
	if err != nil {
		return nil, &TraversalError{Root: a.root, Err: err}
	}

	plan := &Plan{
		Entries:    make([]Entry, 0, len(result.Files)),
		WalkErrors: result.Errors,
	}
	for _, path := range result.Files {
		plan.Entries = append(plan.Entries, Entry{
			Path:    path,
			RelPath: relativePath(a.base, path),
		})
	}
	return plan, nil
}

// Run scans the tree and writes every entry to sink in walk order.
// Per-file read failures are rendered inline and reported in the Summary.
// The returned error is a *TraversalError when the root cannot be walked, or a
// wrapped write error when the sink fails.
func (a *Aggregator) Run(sink io.Writer) (*Summary, error) {
	plan, err := a.Scan()
	if err != nil {
		return nil, err
	}
	return a.Write(plan, sink)
}

// Write renders the entries of plan to sink. Nothing is written for walk
// errors; they are logged and carried into the Summary.
func (a *Aggregator) Write(plan *Plan, sink io.Writer) (*Summary, error) {
	summary := &Summary{
		RunID:      uuid.NewString(),
		Root:       a.root,
		WalkErrors: plan.WalkErrors,
	}
	for _, walkErr := range plan.WalkErrors {
		a.logger.LogWarn(fmt.Sprintf("skipping unreadable entry: %v", walkErr))
	}

	w := &errWriter{w: sink}
	for _, entry := range plan.Entries {
		if readErr := writeEntry(w, entry); readErr != nil {
			summary.Failed = append(summary.Failed, entry.RelPath)
			a.logger.LogWarn(readErr.Error())
		} else {
			a.logger.LogDebug(fmt.Sprintf("included %s", entry.RelPath))
		}
		if w.err != nil {
			return summary, fmt.Errorf("write output: %w", w.err)
		}
		summary.Included++
	}

	return summary, nil
}

// writeEntry writes the marker, content (or placeholder) and divider for one
// entry. It returns the read failure, if any, after the divider is written.
func writeEntry(w *errWriter, entry Entry) *FileReadError {
	w.writeString(MarkerPrefix + entry.RelPath + "\n")

	var readErr *FileReadError
	content, err := readContent(entry.Path)
	if err != nil {
		readErr = &FileReadError{Path: entry.RelPath, Err: err}
		w.writeString(fmt.Sprintf("[Error reading file: %v]\n", err))
	} else {
		w.write(content)
	}

	w.writeString("\n" + divider + "\n\n")
	return readErr
}

// readContent reads a file as UTF-8 text with line endings normalized to "\n".
func readContent(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := validateUTF8(data); err != nil {
		return nil, err
	}
	if bytes.IndexByte(data, '\r') >= 0 {
		data = bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n"))
		data = bytes.ReplaceAll(data, []byte("\r"), []byte("\n"))
	}
	return data, nil
}

func validateUTF8(data []byte) error {
	if utf8.Valid(data) {
		return nil
	}
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return &DecodeError{Offset: i, Byte: data[i]}
		}
		i += size
	}
	return nil
}

// relativePath falls back to the absolute path when no relative path exists,
// e.g. across Windows volumes.
func relativePath(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}

func absPath(p string) string {
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}

// errWriter remembers the first write error and drops later writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(p []byte) {
	if ew.err != nil {
		return
	}
	_, ew.err = ew.w.Write(p)
}

func (ew *errWriter) writeString(s string) {
	ew.write([]byte(s))
}
