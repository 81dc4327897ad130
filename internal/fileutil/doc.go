// Package fileutil provides deterministic directory scanning for treedump.
//
// ScanDirectory walks a root directory and returns the regular files that
// survive its filters:
//   - Extensions: case-insensitive allow-list, matched against the substring
//     from the final "." of the file name (files without a dot never match)
//   - ExcludeNames: exact file names to drop wherever they occur
//   - ExcludePaths: specific files to drop, e.g. the output file of a run
//
// # Ordering
//
// Entries are walked in lexical order within each directory (filepath.WalkDir),
// and Files preserves that walk order. Two scans of an unchanged tree return
// identical slices.
//
// # Errors
//
// Only the root is fatal: a missing root, a root that is not a directory
// (ErrNotDirectory) or a root that cannot be listed is returned as an error.
// Anything below the root that cannot be read is recorded in ScanResult.Errors
// and the walk carries on without that subtree.
//
// # Usage
//
//	result, err := fileutil.ScanDirectory("./src", fileutil.ScanOptions{
//	    Extensions:   []string{".go", ".py"},
//	    Recursive:    true,
//	    ExcludeNames: []string{"treedump"},
//	    ExcludePaths: []string{"./src/output.txt"},
//	})
//	if err != nil {
//	    return err
//	}
//	for _, file := range result.Files {
//	    fmt.Println(file)
//	}
package fileutil
