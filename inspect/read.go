// Package inspect reads a generated dataset back and checks its shape and
// value ranges.
package inspect

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rustyeddy/optfixture/fixture"
)

var (
	ErrMalformed  = errors.New("malformed minute file")
	ErrOutOfRange = errors.New("value out of range")
)

// ReadFile parses one minute file. The header must match fixture.Header
// exactly and every line must carry the same number of fields.
func ReadFile(path string) ([]fixture.Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	recs, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	if len(recs) == 0 {
		return nil, fmt.Errorf("%w: %s: empty file", ErrMalformed, path)
	}
	if !slices.Equal(recs[0], fixture.Header) {
		return nil, fmt.Errorf("%w: %s: header %q", ErrMalformed, path, strings.Join(recs[0], ","))
	}

	var rows []fixture.Row
	if err := gocsv.UnmarshalBytes(data, &rows); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformed, path, err)
	}
	return rows, nil
}

// ListFiles returns every .csv file under root in lexical order.
func ListFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && filepath.Ext(path) == fixture.FileExt {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Missing returns the planned paths that do not exist under root.
func Missing(root string, plan []fixture.Entry) ([]string, error) {
	var out []string
	for _, e := range plan {
		p := e.Path(root)
		_, err := os.Stat(p)
		if errors.Is(err, fs.ErrNotExist) {
			out = append(out, p)
			continue
		}
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}
