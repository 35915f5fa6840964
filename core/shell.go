package core

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"
	"syscall"

	"github.com/abiosoft/readline"
	"github.com/justinmayhew/msh/core/logger"
)

// Environment variables the shell itself consults.
const (
	EnvHome     = "HOME"
	EnvPath     = "PATH"
	EnvPrompt   = "PS1"
	EnvHostname = "HOSTNAME"
	EnvUser     = "USER"
)

const (
	// Version is reported by the help builtin.
	Version = "0.1.0"

	// DefaultPrompt renders as "<working directory> $ ".
	DefaultPrompt = `\w \$ `
)

// Shell is one interactive session: interpreter state plus the line reader
// and the streams the session runs against.
type Shell struct {
	State    *State
	Readline *readline.Instance

	prompt  string
	stdio   IO
	log     *logger.Logger
	history []string

	lastStatus int
	exitCode   int
	quit       bool

	toClose listCloser
}

// Options configures a Shell. The zero value runs against the process's own
// standard streams with the default prompt and no history file.
type Options struct {
	// Prompt is the template used when PS1 is unset; see Prompt for the
	// escapes it understands. Empty means DefaultPrompt.
	Prompt string

	// HistoryFile persists input lines across sessions when non-empty.
	HistoryFile string

	// HistoryLimit caps the persisted history; zero keeps the line
	// reader's default.
	HistoryLimit int

	// Terminal marks the input as an interactive terminal, enabling line
	// editing. Leave false when reading from a pipe or a buffer.
	Terminal bool

	// Log receives one event per interpreted command. Nil disables
	// session logging.
	Log *logger.Logger

	Stdin  io.ReadCloser
	Stdout io.Writer
	Stderr io.Writer
}

func NewShell(state *State, opts Options) (*Shell, error) {
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Prompt == "" {
		opts.Prompt = DefaultPrompt
	}

	cfg := &readline.Config{
		Stdin:           readline.NewCancelableStdin(opts.Stdin),
		Stdout:          opts.Stdout,
		Stderr:          opts.Stderr,
		HistoryFile:     opts.HistoryFile,
		HistoryLimit:    opts.HistoryLimit,
		InterruptPrompt: "^C",
		FuncIsTerminal: func() bool {
			return opts.Terminal
		},
	}

	if err := cfg.Init(); err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(cfg)
	if err != nil {
		return nil, err
	}

	shell := &Shell{
		State:    state,
		Readline: rl,
		prompt:   opts.Prompt,
		stdio:    IO{In: opts.Stdin, Out: opts.Stdout, Err: opts.Stderr},
		log:      opts.Log,
	}
	shell.toClose = append(shell.toClose, rl)

	return shell, nil
}

// Stdout is the stream builtins write results to.
func (s *Shell) Stdout() io.Writer {
	return s.stdio.Out
}

// Stderr is the stream diagnostics go to.
func (s *Shell) Stderr() io.Writer {
	return s.stdio.Err
}

// LastStatus is the exit status of the most recent command cycle.
func (s *Shell) LastStatus() int {
	return s.lastStatus
}

// Errorf reports a shell diagnostic on stderr, prefixed with the shell name.
func (s *Shell) Errorf(format string, args ...interface{}) {
	fmt.Fprintf(s.stdio.Err, "msh: "+format+"\n", args...)
}

// Prompt renders the prompt template. PS1, when set, overrides the
// configured template. The escapes are a small bash-compatible set:
// \u user, \h hostname, \w working directory with HOME shortened to ~,
// and \$ which is "#" for root and "$" otherwise. Remaining backslash
// escapes are interpreted last, so a template can carry \033[ color codes.
func (s *Shell) Prompt() string {
	prompt := s.State.Env().Getenv(EnvPrompt)
	if prompt == "" {
		prompt = s.prompt
	}
	prompt = strings.ReplaceAll(prompt, `\u`, s.State.Env().Getenv(EnvUser))
	prompt = strings.ReplaceAll(prompt, `\h`, s.State.Env().Getenv(EnvHostname))

	pwd := s.State.Getwd()
	if home := s.State.Home(); home != "" {
		if pwd == home {
			pwd = "~"
		} else if strings.HasPrefix(pwd, home+"/") {
			pwd = "~" + strings.TrimPrefix(pwd, home)
		}
	}
	prompt = strings.ReplaceAll(prompt, `\w`, pwd)

	if os.Getuid() == 0 {
		prompt = strings.ReplaceAll(prompt, `\$`, "#")
	} else {
		prompt = strings.ReplaceAll(prompt, `\$`, "$")
	}

	return unescapePrompt(prompt)
}

var (
	promptOctal    = regexp.MustCompile(`\\0[0-7][0-7]?[0-7]?`)
	promptHex      = regexp.MustCompile(`\\x[0-9a-fA-F][0-9a-fA-F]?`)
	promptReplacer = strings.NewReplacer(
		`\n`, "\n", // newline
		`\r`, "\r", // carriage return
		`\t`, "\t", // horizontal tab
		`\\`, `\`, // backslash literal
		`\a`, "\a", // alert
	)
)

func unescapePrompt(s string) string {
	s = promptReplacer.Replace(s)
	s = promptOctal.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseInt(arg[2:], 8, 8)
		if err != nil {
			return arg
		}
		return string(rune(out))
	})
	s = promptHex.ReplaceAllStringFunc(s, func(arg string) string {
		out, err := strconv.ParseInt(arg[2:], 16, 8)
		if err != nil {
			return arg
		}
		return string(rune(out))
	})
	return s
}

// Run is the interactive loop: prompt, read a line, interpret it, repeat. It
// returns the shell's final exit status: the operand of the exit builtin, or
// zero when input ends.
func (s *Shell) Run() int {
	for !s.quit {
		s.Readline.SetPrompt(s.Prompt())
		line, err := s.Readline.Readline()

		switch {
		case err == io.EOF:
			return s.exitCode

		case err == readline.ErrInterrupt:
			continue

		case err != nil:
			log.Printf("readline: %v", err)
			continue
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		s.history = append(s.history, line)
		s.Interpret(line)
	}
	return s.exitCode
}

// Interpret runs a single input line through the command cycle: split into
// tokens, expand each token, classify, then execute. It returns the cycle's
// exit status, which also becomes LastStatus. A line with no tokens leaves
// all state untouched.
func (s *Shell) Interpret(line string) int {
	argv := SplitLine(line)
	for i, tok := range argv {
		argv[i] = Expand(s.State.Env(), tok)
	}

	cmd, lookErr := Classify(s.State, argv)
	switch cmd.Kind {
	case CommandEmpty:
		return s.lastStatus

	case CommandBuiltin:
		status := AllBuiltins[cmd.Argv[0]].Main(s, cmd.Argv)
		s.lastStatus = status
		s.logEvent(&logger.Event{
			Kind:   logger.EventBuiltin,
			Argv:   cmd.Argv,
			Status: status,
		})
		return status
	}

	switch {
	case errors.Is(lookErr, ErrNotFound):
		s.Errorf("command not found: %s", cmd.Argv[0])
		return s.fail(cmd, ExitNotFound, logger.EventNotFound)

	case errors.Is(lookErr, fs.ErrPermission):
		s.Errorf("permission denied: %s", cmd.Argv[0])
		return s.fail(cmd, ExitLaunchFailed, logger.EventLaunchFailed)

	case lookErr != nil:
		s.Errorf("%s: %v", cmd.Argv[0], lookErr)
		return s.fail(cmd, ExitLaunchFailed, logger.EventLaunchFailed)
	}

	status, err := Run(s.State, cmd, s.stdio)
	if err != nil {
		s.Errorf("%s: %v", cmd.Argv[0], err)
		return s.fail(cmd, status.Code, logger.EventLaunchFailed)
	}

	if status.Signaled && status.Signal != syscall.SIGINT {
		s.Errorf("terminated by signal: %v", status.Signal)
	}

	s.lastStatus = status.Code
	s.logEvent(&logger.Event{
		Kind:   logger.EventExec,
		Argv:   cmd.Argv,
		Path:   cmd.Path,
		Status: status.Code,
		Signal: signalName(status),
	})
	return s.lastStatus
}

func (s *Shell) fail(cmd Command, status int, kind logger.EventKind) int {
	s.lastStatus = status
	s.logEvent(&logger.Event{
		Kind:   kind,
		Argv:   cmd.Argv,
		Status: status,
	})
	return status
}

func (s *Shell) logEvent(e *logger.Event) {
	if s.log == nil {
		return
	}
	if err := s.log.Record(e); err != nil {
		log.Printf("session log: %v", err)
	}
}

func signalName(status Status) string {
	if !status.Signaled {
		return ""
	}
	return status.Signal.String()
}

// Close releases the line reader and anything else the shell opened.
func (s *Shell) Close() error {
	return s.toClose.Close()
}

type listCloser []io.Closer

func (lc listCloser) Close() error {
	var lastErr error
	for _, v := range lc {
		if err := v.Close(); err != nil {
			lastErr = err
		}
	}

	return lastErr
}
