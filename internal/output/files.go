package output

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
)

// ErrUnsafeKey is returned by Plan for a key whose file would not land
// directly in the output directory.
var ErrUnsafeKey = errors.New("file name escapes the output directory")

// File is one planned output file.
type File struct {
	// Key is the grouping key the file is named after.
	Key string

	// Path is the output directory joined with Key and the format extension.
	Path string

	Document interface{}
}

// Plan turns a grouping into the list of files to write, sorted by key.
// Every key is checked before anything is written: a key containing a path
// separator is rejected along with absolute and escaping ones.
func Plan(groups map[string]interface{}, dir string, format Format) ([]File, error) {
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	files := make([]File, 0, len(keys))

	for _, key := range keys {
		name := key + format.Extension
		if !filepath.IsLocal(name) || filepath.Base(name) != name {
			return nil, fmt.Errorf("%w: %q", ErrUnsafeKey, name)
		}

		files = append(files, File{
			Key:      key,
			Path:     filepath.Join(dir, name),
			Document: groups[key],
		})
	}

	return files, nil
}

// WriteFiles serializes and writes each file in order, calling written after
// every successful write. The first failure stops the run; files written
// before it stay in place.
func WriteFiles(files []File, format Format, newWriter WriterFactory, written func(File)) error {
	for _, f := range files {
		data, err := format.Serialize(f.Document)
		if err != nil {
			return fmt.Errorf("serializing %s: %w", f.Path, err)
		}

		if err := newWriter(f.Path).Write(data); err != nil {
			return err
		}

		if written != nil {
			written(f)
		}
	}

	return nil
}
