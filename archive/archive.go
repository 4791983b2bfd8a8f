// Package archive packs a generated dataset into a single .tar.xz file.
package archive

import (
	"archive/tar"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"
)

// WriteTarXZ writes every directory and regular file under root to dst.
// Entry names keep root's base name as their first element, so
// dataset/20240502/0930.csv unpacks back to the same tree. It returns the
// number of regular files archived.
func WriteTarXZ(root, dst string) (int, error) {
	info, err := os.Stat(root)
	if err != nil {
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("%s is not a directory", root)
	}

	// Walk absolute paths so an output file under root is recognized
	// however either path was spelled.
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return 0, fmt.Errorf("resolve %s: %w", root, err)
	}
	skip, err := filepath.Abs(dst)
	if err != nil {
		return 0, fmt.Errorf("resolve %s: %w", dst, err)
	}

	out, err := os.Create(dst)
	if err != nil {
		return 0, err
	}

	n, err := writeTarXZ(absRoot, skip, out)
	if err != nil {
		out.Close()
		os.Remove(dst)
		return 0, err
	}
	if err := out.Close(); err != nil {
		return 0, err
	}
	return n, nil
}

// root and skip are absolute; skip names an output file that may live
// under root.
func writeTarXZ(root, skip string, w io.Writer) (int, error) {
	xw, err := xz.NewWriter(w)
	if err != nil {
		return 0, fmt.Errorf("xz writer: %w", err)
	}
	tw := tar.NewWriter(xw)

	base := filepath.Dir(root)
	files := 0
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && !d.Type().IsRegular() {
			return nil
		}
		if path == skip {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(base, path)
		if err != nil {
			return err
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = filepath.ToSlash(rel)
		if d.IsDir() {
			hdr.Name += "/"
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if _, err := io.Copy(tw, f); err != nil {
			return fmt.Errorf("archive %s: %w", path, err)
		}
		files++
		return nil
	})
	if err != nil {
		return 0, err
	}

	if err := tw.Close(); err != nil {
		return 0, err
	}
	if err := xw.Close(); err != nil {
		return 0, err
	}
	return files, nil
}
