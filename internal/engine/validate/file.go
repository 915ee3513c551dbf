package validate

import (
	"fmt"
	"os"
	"path/filepath"
)

// OutputPath checks that path can be written: its parent directory must exist
// or be creatable, and a probe write must succeed. A probe file created here
// is removed again; a pre-existing file is left untouched.
func OutputPath(path string) Result[string] {
	if path == "" {
		return Fail[string]("Path validation error: empty path")
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return Fail[string](fmt.Sprintf("Cannot create directory: %v", err))
		}
	}

	_, statErr := os.Stat(path)
	existed := statErr == nil

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0o644)
	if err != nil {
		return Fail[string](fmt.Sprintf("Cannot write to file: %v", err))
	}
	if err := f.Close(); err != nil {
		return Fail[string](fmt.Sprintf("Cannot write to file: %v", err))
	}
	if !existed {
		if err := os.Remove(path); err != nil {
			return Fail[string](fmt.Sprintf("Cannot remove probe file: %v", err))
		}
	}
	return Ok(path)
}

// FileSize accepts sizes in (0, maxMB MiB].
func FileSize(size int64, maxMB float64) Result[int64] {
	if size <= 0 {
		return Fail[int64]("Invalid file size")
	}
	if float64(size) > maxMB*1024*1024 {
		return Fail[int64](fmt.Sprintf("File size exceeds maximum allowed size of %gMB", maxMB))
	}
	return Ok(size)
}
