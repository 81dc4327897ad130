package aggregate

import (
	"fmt"
)

// TraversalError reports that the root directory could not be enumerated.
// It is the only fatal failure of a run besides a broken sink.
type TraversalError struct {
	Root string
	Err  error
}

func (e *TraversalError) Error() string {
	return fmt.Sprintf("cannot traverse %s: %v", e.Root, e.Err)
}

func (e *TraversalError) Unwrap() error {
	return e.Err
}

// FileReadError reports a matched file whose content could not be read or
// decoded. It is rendered inline in the output and never returned from a run.
type FileReadError struct {
	Path string // relative to the base directory
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Path, e.Err)
}

func (e *FileReadError) Unwrap() error {
	return e.Err
}

// DecodeError reports content that is not valid UTF-8.
type DecodeError struct {
	Offset int
	Byte   byte
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid UTF-8 byte 0x%02x at offset %d", e.Byte, e.Offset)
}
