package utils

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

const (
	// DirPerm is used for every directory created on the way to a file.
	DirPerm os.FileMode = 0o775
	// FilePerm is used for generated and seeded files.
	FilePerm os.FileMode = 0o644
)

// WriteFile creates any missing parent directories and then writes content to
// path, truncating an existing file. The write is not atomic.
func WriteFile(path string, content []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, DirPerm); err != nil {
		return errors.Wrapf(err, "creating directory %s", dir)
	}
	if err := os.WriteFile(path, content, FilePerm); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}
	return nil
}

// Exists reports whether path exists, following symlinks.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// CopyResult says what CopyIfAbsent did.
type CopyResult string

const (
	Copied            CopyResult = "copied"
	DestinationExists CopyResult = "exists"
	SourceMissing     CopyResult = "no-template"
)

// CopyIfAbsent copies src to dst only when dst does not exist yet and src
// does. Only the copy itself can fail.
func CopyIfAbsent(src, dst string) (CopyResult, error) {
	if Exists(dst) {
		return DestinationExists, nil
	}
	if !Exists(src) {
		return SourceMissing, nil
	}
	if err := CopyFile(src, dst); err != nil {
		return "", err
	}
	return Copied, nil
}

// CopyFile copies the contents of src into dst, replacing dst.
func CopyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return errors.Wrapf(err, "opening %s", src)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, FilePerm)
	if err != nil {
		return errors.Wrapf(err, "creating %s", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return errors.Wrapf(err, "copying %s to %s", src, dst)
	}
	return errors.Wrapf(out.Close(), "closing %s", dst)
}
