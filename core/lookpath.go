package core

import (
	"errors"
	"io/fs"
	"os/exec"
	"path/filepath"
	"strings"
)

// ErrNotFound is the error resulting if a path search failed to find an
// executable file.
var ErrNotFound = exec.ErrNotFound

func findExecutable(s *State, file string) error {
	d, err := s.fs.Stat(file)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return ErrNotFound
	case err != nil:
		return err
	}

	if m := d.Mode(); !m.IsDir() && m&0111 != 0 {
		return nil
	}
	return fs.ErrPermission
}

// LookPath searches for an executable named file in the directories listed
// in the PATH variable of s, consulted at call time. If file contains a
// slash it is tried directly, relative to the working directory of s, and
// PATH is not consulted. The result is an absolute path.
func LookPath(s *State, file string) (string, error) {
	if strings.Contains(file, "/") {
		path := s.Abs(file)
		if err := findExecutable(s, path); err != nil {
			return "", err
		}
		return path, nil
	}

	for _, dir := range filepath.SplitList(s.env.Getenv(EnvPath)) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := s.Abs(filepath.Join(dir, file))
		if err := findExecutable(s, path); err == nil {
			return path, nil
		}
	}
	return "", ErrNotFound
}
