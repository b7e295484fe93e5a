package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// Ext is the artifact's file extension, including the dot.
const Ext = ".zip"

// Create compresses everything under srcRoot into one ZIP file at dest,
// overwriting any prior artifact there. On any failure the destination
// is left without a partial archive.
func Create(srcRoot, dest string) error {
	tmp := dest + ".partial"
	if err := writeZip(srcRoot, tmp); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("moving archive into place: %w", err)
	}
	return nil
}

func writeZip(srcRoot, path string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating archive file: %w", err)
	}

	zw := zip.NewWriter(out)
	walkErr := filepath.WalkDir(srcRoot, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(srcRoot, p)
		if err != nil {
			return err
		}
		return addFile(zw, p, filepath.ToSlash(rel))
	})
	if walkErr != nil {
		zw.Close()
		out.Close()
		return fmt.Errorf("archiving staged tree: %w", walkErr)
	}
	if err := zw.Close(); err != nil {
		out.Close()
		return fmt.Errorf("finalizing archive: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing archive file: %w", err)
	}
	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()

	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("adding %s to archive: %w", name, err)
	}
	if _, err := io.Copy(w, in); err != nil {
		return fmt.Errorf("writing %s to archive: %w", name, err)
	}
	return nil
}
