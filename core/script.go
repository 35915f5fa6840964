package core

import (
	"bufio"
	"io"
)

// RunScript interprets r line by line with no prompts and no history, the
// mode used for script files and piped input. Interpretation stops at the
// first exit builtin; otherwise the whole input runs and the status of the
// last command becomes the script's status.
func (s *Shell) RunScript(r io.Reader) int {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		s.Interpret(scanner.Text())
		if s.quit {
			return s.exitCode
		}
	}
	if err := scanner.Err(); err != nil {
		s.Errorf("%v", err)
		return 2
	}
	return s.lastStatus
}

// RunCommand interprets one command line, the mode behind the -c flag.
func (s *Shell) RunCommand(line string) int {
	s.Interpret(line)
	if s.quit {
		return s.exitCode
	}
	return s.lastStatus
}
