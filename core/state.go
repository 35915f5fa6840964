package core

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/afero"
)

// State bundles the mutable interpreter state every command cycle reads:
// the environment snapshot and the shell's working directory. The working
// directory is tracked here rather than with os.Chdir so it can be validated
// before it changes and injected into children at spawn time.
type State struct {
	env *Env
	fs  afero.Fs

	dir     string
	prevDir string
}

// NewState creates interpreter state rooted at dir, which must be absolute.
func NewState(fsys afero.Fs, env *Env, dir string) *State {
	return &State{
		env:     env,
		fs:      fsys,
		dir:     filepath.Clean(dir),
		prevDir: filepath.Clean(dir),
	}
}

// Env returns the environment snapshot.
func (s *State) Env() *Env {
	return s.env
}

// Environ returns the environment as a "key=value" list for a child process.
func (s *State) Environ() []string {
	return s.env.Environ()
}

// Getwd returns the shell's working directory.
func (s *State) Getwd() string {
	return s.dir
}

// PrevWd returns the working directory before the most recent successful
// Chdir. Before any Chdir it equals the starting directory.
func (s *State) PrevWd() string {
	return s.prevDir
}

// Home returns the value of HOME, which may be empty.
func (s *State) Home() string {
	return s.env.Getenv(EnvHome)
}

// Chdir validates dir and, only on success, makes it the working directory.
// Relative paths are resolved against the current working directory. On
// failure the working directory is left unchanged.
func (s *State) Chdir(dir string) error {
	dir = s.Abs(dir)

	stat, err := s.fs.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%s: no such file or directory", dir)
	case err != nil:
		return fmt.Errorf("%s: %v", dir, err)
	case !stat.IsDir():
		return fmt.Errorf("%s: not a directory", dir)
	default:
		s.prevDir, s.dir = s.dir, dir
		return nil
	}
}

// Abs resolves path against the working directory and normalizes it. The
// result is lexical; symlinks and ".." components are not checked against
// the filesystem.
func (s *State) Abs(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Clean(filepath.Join(s.dir, path))
}
