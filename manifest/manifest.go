// Package manifest catalogs the files written by generator runs.
package manifest

import (
	"fmt"

	"github.com/rustyeddy/optfixture/fixture"
)

const (
	TypeNone   = "none"
	TypeCSV    = "csv"
	TypeSQLite = "sqlite"
)

// Manifest receives one record per written minute file.
type Manifest interface {
	fixture.Recorder
	Close() error
}

// Nop discards every record.
type Nop struct{}

func (Nop) RecordFile(fixture.FileWritten) error { return nil }
func (Nop) Close() error { return nil }

// Open returns the manifest for kind. An empty kind means none.
func Open(kind, path string) (Manifest, error) {
	switch kind {
	case "", TypeNone:
		return Nop{}, nil
	case TypeCSV:
		return NewCSV(path)
	case TypeSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown manifest type %q", kind)
	}
}
