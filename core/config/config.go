package config

import (
	_ "embed"
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

var (
	//go:embed default/config.yaml
	defaultConfigData []byte
)

const (
	ConfigurationName = "config.yaml"

	// HistoryName is the default history file, relative to HOME.
	HistoryName = ".msh_history"
)

// Configuration is the optional per-user setup loaded before the first
// prompt. Every field has a usable default, so a missing file is fine.
type Configuration struct {
	fsys afero.Fs
	dir  string

	// Prompt is the template rendered before each read; see the shell's
	// prompt escapes.
	Prompt string `json:"prompt"`

	// Motd is printed once when an interactive session starts.
	Motd string `json:"motd"`

	// HistoryFile overrides the default HOME/.msh_history.
	HistoryFile string `json:"history_file"`

	// HistoryLimit caps the persisted history.
	HistoryLimit int `json:"history_limit" validate:"gte=0"`

	// EnvFile is a dotenv file merged into the starting environment.
	EnvFile string `json:"env_file"`

	// LogFile receives one JSON event per command when set.
	LogFile string `json:"log_file"`

	// DefaultPath seeds PATH when the inherited environment has none.
	DefaultPath string `json:"default_path" validate:"required"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// Dir is the directory the configuration was loaded from.
func (c *Configuration) Dir() string {
	return c.dir
}

// path resolves a configured file name; relative names live next to the
// configuration file itself.
func (c *Configuration) path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.dir, name)
}

// EnvFilePath is the resolved dotenv file, or "" when none is configured.
func (c *Configuration) EnvFilePath() string {
	if c.EnvFile == "" {
		return ""
	}
	return c.path(c.EnvFile)
}

// HistoryFilePath is the resolved history override, or "" to use the
// default under HOME.
func (c *Configuration) HistoryFilePath() string {
	if c.HistoryFile == "" {
		return ""
	}
	return c.path(c.HistoryFile)
}

// OpenSessionLog opens the configured log file in an append only state. It
// must only be called when LogFile is set.
func (c *Configuration) OpenSessionLog() (afero.File, error) {
	return c.fsys.OpenFile(c.path(c.LogFile), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadSessionLog opens the configured log file for reading.
func (c *Configuration) ReadSessionLog() (afero.File, error) {
	return c.fsys.OpenFile(c.path(c.LogFile), os.O_RDONLY, 0)
}

// Default is the built in configuration, used when there is no directory to
// load from.
func Default() *Configuration {
	out := defaultConfig()
	out.fsys = afero.NewOsFs()
	out.dir = "."
	return out
}

func defaultConfig() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}
