package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

// Load reads the configuration under dir. A missing config.yaml yields the
// built in defaults so the shell runs without any setup; a present but
// malformed or invalid one is an error.
func Load(fsys afero.Fs, dir string) (*Configuration, error) {
	// If given the path to a config.yaml file, move back up a level.
	if filepath.Base(dir) == ConfigurationName {
		dir = filepath.Dir(dir)
	}

	out := defaultConfig()
	out.fsys = fsys
	out.dir = dir

	contents, err := afero.ReadFile(fsys, filepath.Join(dir, ConfigurationName))
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return out, nil
	case err != nil:
		return nil, err
	}

	if err := yaml.UnmarshalStrict(contents, out); err != nil {
		return nil, fmt.Errorf("%s: %v", ConfigurationName, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %v", ConfigurationName, err)
	}
	return out, nil
}

// Initialize writes a commented default configuration into dir, creating the
// directory if needed. An existing configuration is left alone.
func Initialize(fsys afero.Fs, dir string, logger *log.Logger) error {
	if err := fsys.MkdirAll(dir, 0700); err != nil {
		return err
	}

	dest := filepath.Join(dir, ConfigurationName)
	exists, err := afero.Exists(fsys, dest)
	switch {
	case err != nil:
		return err
	case exists:
		logger.Printf("found existing %s, skipping", dest)
		return nil
	}

	logger.Printf("creating %s", dest)
	return afero.WriteFile(fsys, dest, defaultConfigData, 0600)
}
