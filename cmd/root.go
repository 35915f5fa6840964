package cmd

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"os/user"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/justinmayhew/msh/core"
	"github.com/justinmayhew/msh/core/config"
	"github.com/justinmayhew/msh/core/logger"
)

var (
	cfgPath     string
	historyFile string
	commandLine string
	envFile     string
	logFile     string

	exitStatus int
)

// rootCmd represents the shell itself when called without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "msh [file]",
	Short: "A simple Unix shell",
	Long: `msh is a small interactive shell: whitespace separated tokens, tilde and
environment variable expansion, a handful of builtins, and PATH lookup
for everything else. With a file argument or piped input it runs in
batch mode, one command per line.`,
	Version: core.Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runShell,
}

// Execute runs the root command and leaves the process with the shell's
// final exit status. This is called by main.main().
func Execute() {
	cobra.CheckErr(rootCmd.Execute())
	os.Exit(exitStatus)
}

func configDir() (string, error) {
	if cfgPath != "" {
		return cfgPath, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, "msh"), nil
}

func loadConfig() (*config.Configuration, error) {
	dir, err := configDir()
	if err != nil {
		// No resolvable config directory; run on the defaults.
		return config.Default(), nil
	}
	return config.Load(afero.NewOsFs(), dir)
}

func runShell(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	env := core.NewEnvFromList(os.Environ())
	if _, ok := env.LookupEnv(core.EnvPath); !ok {
		env.Setenv(core.EnvPath, cfg.DefaultPath)
	}
	if _, ok := env.LookupEnv(core.EnvHostname); !ok {
		if host, err := os.Hostname(); err == nil {
			env.Setenv(core.EnvHostname, host)
		}
	}
	if _, ok := env.LookupEnv(core.EnvUser); !ok {
		if u, err := user.Current(); err == nil {
			env.Setenv(core.EnvUser, u.Username)
		}
	}

	if envFile != "" {
		if err := mergeEnvFile(env, envFile, false); err != nil {
			return err
		}
	} else if path := cfg.EnvFilePath(); path != "" {
		if err := mergeEnvFile(env, path, true); err != nil {
			return err
		}
	}

	wd, err := os.Getwd()
	if err != nil {
		return err
	}
	state := core.NewState(afero.NewOsFs(), env, wd)

	logDest, err := openSessionLog(cfg)
	if err != nil {
		return err
	}
	var sessionLog *logger.Logger
	if logDest != nil {
		defer logDest.Close()
		sessionLog = logger.NewJSONLines(logDest)
	}

	opts := core.Options{
		Prompt: cfg.Prompt,
		Log:    sessionLog,
	}

	interactive := commandLine == "" && len(args) == 0 &&
		term.IsTerminal(int(os.Stdin.Fd()))
	if interactive {
		opts.Terminal = true
		opts.HistoryFile = resolveHistory(cfg, state.Home())
		opts.HistoryLimit = cfg.HistoryLimit
	}

	shell, err := core.NewShell(state, opts)
	if err != nil {
		return err
	}
	defer shell.Close()

	switch {
	case commandLine != "":
		exitStatus = shell.RunCommand(commandLine)
	case len(args) == 1:
		fd, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer fd.Close()
		exitStatus = shell.RunScript(fd)
	case interactive:
		printMotd(cmd.OutOrStdout(), cfg.Motd)
		exitStatus = shell.Run()
	default:
		exitStatus = shell.RunScript(os.Stdin)
	}
	return nil
}

// mergeEnvFile loads a dotenv file over env. When optional, a missing file
// is skipped so a configured default does not break startup.
func mergeEnvFile(env *core.Env, path string, optional bool) error {
	values, err := godotenv.Read(path)
	switch {
	case optional && errors.Is(err, fs.ErrNotExist):
		return nil
	case err != nil:
		return err
	}

	for k, v := range values {
		env.Setenv(k, v)
	}
	return nil
}

func openSessionLog(cfg *config.Configuration) (io.WriteCloser, error) {
	if logFile != "" {
		return os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	}
	if cfg.LogFile != "" {
		return cfg.OpenSessionLog()
	}
	return nil, nil
}

func resolveHistory(cfg *config.Configuration, home string) string {
	switch {
	case historyFile != "":
		return historyFile
	case cfg.HistoryFilePath() != "":
		return cfg.HistoryFilePath()
	case home != "":
		return filepath.Join(home, config.HistoryName)
	default:
		// Nowhere sensible to put it; run without persistence.
		return ""
	}
}

func printMotd(w io.Writer, motd string) {
	if motd == "" {
		return
	}
	color.New(color.FgCyan).Fprintln(w, motd)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config directory (default is $XDG_CONFIG_HOME/msh)")
	rootCmd.Flags().StringVar(&historyFile, "history", "", "history file (default is $HOME/.msh_history)")
	rootCmd.Flags().StringVarP(&commandLine, "command", "c", "", "run a single command line and exit")
	rootCmd.Flags().StringVar(&envFile, "env-file", "", "dotenv file merged into the starting environment")
	rootCmd.Flags().StringVar(&logFile, "log", "", "append one JSON event per command to this file")
}
