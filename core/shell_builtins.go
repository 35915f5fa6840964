package core

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/pborman/getopt/v2"
)

// AllBuiltins holds a list of all registered shell builtins
var AllBuiltins = make(map[string]ShellBuiltin)

type ShellBuiltin interface {
	Main(s *Shell, args []string) int
}

type ShellBuiltinFunc func(s *Shell, args []string) int

func (f ShellBuiltinFunc) Main(s *Shell, args []string) int {
	return f(s, args)
}

var _ ShellBuiltin = (ShellBuiltinFunc)(nil)

// Cd is the cd shell builtin. With no operand it changes to HOME, with "-"
// to the previous working directory. Failures leave the directory as it was.
func Cd(s *Shell, args []string) int {
	var dir string
	switch len(args) {
	case 1:
		dir = s.State.Home()
		if dir == "" {
			s.Errorf("%s: HOME not set", args[0])
			return 1
		}
	case 2:
		dir = args[1]
		if dir == "-" {
			dir = s.State.PrevWd()
		}
	default:
		s.Errorf("%s: too many arguments", args[0])
		return 1
	}

	if err := s.State.Chdir(dir); err != nil {
		s.Errorf("%s: %v", args[0], err)
		return 1
	}
	if len(args) == 2 && args[1] == "-" {
		fmt.Fprintln(s.Stdout(), s.State.Getwd())
	}
	return 0
}

// Export sets environment variables. Operands are NAME=VALUE assignments; a
// bare NAME creates the variable with an empty value if it does not exist.
func Export(s *Shell, args []string) int {
	if len(args) == 1 {
		s.Errorf("%s: not enough arguments", args[0])
		return 1
	}

	ret := 0
	for _, arg := range args[1:] {
		name, value, assign := arg, "", false
		if i := strings.IndexByte(arg, '='); i >= 0 {
			name, value, assign = arg[:i], arg[i+1:], true
		}
		if !isName(name) {
			s.Errorf("%s: `%s': not a valid identifier", args[0], arg)
			ret = 1
			continue
		}
		if !assign {
			if _, ok := s.State.Env().LookupEnv(name); ok {
				continue
			}
		}
		s.State.Env().Setenv(name, value)
	}
	return ret
}

// Unset removes environment variables. Unsetting a variable that does not
// exist is not an error.
func Unset(s *Shell, args []string) int {
	if len(args) == 1 {
		s.Errorf("%s: not enough arguments", args[0])
		return 1
	}

	ret := 0
	for _, name := range args[1:] {
		if !isName(name) {
			s.Errorf("%s: `%s': not a valid identifier", args[0], name)
			ret = 1
			continue
		}
		s.State.Env().Unsetenv(name)
	}
	return ret
}

// Exit quits the shell with the given status, default zero. A status that is
// not a number is reported without quitting.
func Exit(s *Shell, args []string) int {
	switch len(args) {
	case 1:
		s.quit = true
		s.exitCode = 0
	case 2:
		code, err := strconv.Atoi(args[1])
		if err != nil {
			s.Errorf("%s: %s: numeric argument required", args[0], args[1])
			return 2
		}
		s.quit = true
		s.exitCode = int(uint8(code))
	default:
		s.Errorf("%s: too many arguments", args[0])
		return 1
	}
	return s.exitCode
}

func Pwd(s *Shell, args []string) int {
	fmt.Fprintln(s.Stdout(), s.State.Getwd())
	return 0
}

func History(s *Shell, args []string) int {
	opts := getopt.New()
	clear := opts.Bool('c', "clear the history by deleting all entries")
	helpOpt := opts.BoolLong("help", 'h', "show help and exit")

	if err := opts.Getopt(args, nil); err != nil || *helpOpt {
		w := s.Stderr()
		if err != nil {
			fmt.Fprintln(w, err)
		}
		fmt.Fprintln(w, "usage: history [-c]")
		fmt.Fprintln(w, "Display the history list with line numbers, or clear it.")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Options:")
		opts.PrintOptions(w)
		return 1
	}

	if *clear {
		if s.Readline != nil {
			s.Readline.Operation.ResetHistory()
		}
		s.history = nil
		return 0
	}

	for i, line := range s.history {
		fmt.Fprintf(s.Stdout(), "% 5d  %s\n", i+1, line)
	}
	return 0
}

func Help(s *Shell, args []string) int {
	w := s.Stdout()
	fmt.Fprintln(w, "msh, version "+Version)
	fmt.Fprintln(w, "These shell commands are defined internally.  Type `help' to see this list.")
	fmt.Fprintln(w)

	var builtins []string
	for k := range AllBuiltins {
		builtins = append(builtins, k)
	}
	sort.Strings(builtins)
	fmt.Fprintln(w, strings.Join(builtins, "\n"))

	return 0
}

// Type reports for each operand whether it names a builtin or an executable
// found on PATH.
func Type(s *Shell, args []string) int {
	ret := 0
	for _, name := range args[1:] {
		if _, ok := AllBuiltins[name]; ok {
			fmt.Fprintf(s.Stdout(), "%s is a shell builtin\n", name)
			continue
		}
		path, err := LookPath(s.State, name)
		if err != nil {
			s.Errorf("%s: %s: not found", args[0], name)
			ret = 1
			continue
		}
		fmt.Fprintf(s.Stdout(), "%s is %s\n", name, path)
	}
	return ret
}

func init() {
	AllBuiltins["cd"] = ShellBuiltinFunc(Cd)
	AllBuiltins["export"] = ShellBuiltinFunc(Export)
	AllBuiltins["unset"] = ShellBuiltinFunc(Unset)
	AllBuiltins["exit"] = ShellBuiltinFunc(Exit)
	AllBuiltins["pwd"] = ShellBuiltinFunc(Pwd)
	AllBuiltins["history"] = ShellBuiltinFunc(History)
	AllBuiltins["help"] = ShellBuiltinFunc(Help)
	AllBuiltins["type"] = ShellBuiltinFunc(Type)
}
