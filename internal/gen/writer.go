package gen

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFiles writes all generated files to the output directory.
// It creates the directory if it doesn't exist. Every file is staged in a
// temporary sibling before any of them is renamed into place, so a failed
// write never leaves a header updated without its implementation.
func WriteFiles(files []GeneratedFile, outputDir string) error {
	err := os.MkdirAll(outputDir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	// Renamed temporaries are already gone; removing them again is a no-op.
	staged := make([]string, 0, len(files))
	defer func() {
		for _, tmp := range staged {
			os.Remove(tmp)
		}
	}()

	for _, file := range files {
		tmp, err := stage(filepath.Join(outputDir, file.Filename), file.Content)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}

		staged = append(staged, tmp)
	}

	for i, file := range files {
		if err := os.Rename(staged[i], filepath.Join(outputDir, file.Filename)); err != nil {
			return fmt.Errorf("writing file %s: %w", file.Filename, err)
		}
	}

	return nil
}

// WriteFile writes one artifact to an explicit path, atomically.
func WriteFile(path string, content []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	return writeAtomic(path, content)
}

// WriteConcatenated writes the artifacts to w back to back, in order.
func WriteConcatenated(w io.Writer, files []GeneratedFile) error {
	for _, file := range files {
		if _, err := w.Write(file.Content); err != nil {
			return fmt.Errorf("writing %s: %w", file.Filename, err)
		}
	}

	return nil
}

func writeAtomic(path string, content []byte) error {
	tmp, err := stage(path, content)
	if err != nil {
		return err
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}

	return nil
}

// stage writes content to a temporary file next to path and returns its name.
func stage(path string, content []byte) (string, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return "", err
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return "", err
	}

	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		os.Remove(tmpName)

		return "", err
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", err
	}

	return tmpName, nil
}
