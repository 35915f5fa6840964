package core

// CommandKind says how an expanded argument vector will be run.
type CommandKind int

const (
	// CommandEmpty is a line with no tokens; the cycle is a no-op.
	CommandEmpty CommandKind = iota
	// CommandBuiltin runs inside the shell process.
	CommandBuiltin
	// CommandExternal spawns a child process.
	CommandExternal
)

// Command is one classified invocation. Argv is the full expanded argument
// vector, Argv[0] included. Path is set only for an external command that
// resolved successfully.
type Command struct {
	Kind CommandKind
	Argv []string
	Path string
}

// Classify decides how the expanded argument vector argv will run. The first
// token is the command name; it is a builtin exactly when it matches a
// registered builtin name, and anything else is an external command resolved
// through LookPath. Resolution failures return the external Command with an
// empty Path alongside the lookup error.
func Classify(s *State, argv []string) (Command, error) {
	if len(argv) == 0 {
		return Command{Kind: CommandEmpty}, nil
	}
	if _, ok := AllBuiltins[argv[0]]; ok {
		return Command{Kind: CommandBuiltin, Argv: argv}, nil
	}

	path, err := LookPath(s, argv[0])
	if err != nil {
		return Command{Kind: CommandExternal, Argv: argv}, err
	}
	return Command{Kind: CommandExternal, Argv: argv, Path: path}, nil
}
