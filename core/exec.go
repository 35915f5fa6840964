package core

import (
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"syscall"
)

// Exit statuses the shell reports for commands it could not run, matching
// the usual Unix shell convention.
const (
	ExitLaunchFailed = 126
	ExitNotFound     = 127
)

// IO is the stream bundle a command cycle runs against. The shell hands its
// own streams to every child untouched; there is no redirection.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// Status is the outcome of one external command.
type Status struct {
	// Code is the exit status: the child's own exit code, or 128 plus the
	// signal number when the child was killed by a signal.
	Code int

	// Signal is set when the child was killed by a signal.
	Signaled bool
	Signal   syscall.Signal
}

// Run spawns cmd, which must be a resolved external command, and waits for
// it to finish. The child starts in the working directory of s with a copy
// of the environment of s taken now; later shell-side mutations do not
// reach it. While the child runs the shell swallows SIGINT and SIGQUIT so a
// Ctrl-C from the terminal interrupts the child but not the shell.
//
// A non-zero exit status is not an error here. The returned error means the
// child could not be started at all.
func Run(s *State, cmd Command, stdio IO) (Status, error) {
	child := &exec.Cmd{
		Path:   cmd.Path,
		Args:   cmd.Argv,
		Env:    s.Environ(),
		Dir:    s.Getwd(),
		Stdin:  stdio.In,
		Stdout: stdio.Out,
		Stderr: stdio.Err,
	}

	if err := child.Start(); err != nil {
		return Status{Code: ExitLaunchFailed}, err
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGQUIT)
	done := make(chan struct{})
	go func() {
		for {
			select {
			case <-sigs:
				// The terminal already delivered it to the child through
				// the shared process group; the shell just stays alive.
			case <-done:
				return
			}
		}
	}()

	err := child.Wait()
	signal.Stop(sigs)
	close(done)

	var exitErr *exec.ExitError
	switch {
	case err == nil:
		return Status{}, nil
	case errors.As(err, &exitErr):
		if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
			sig := ws.Signal()
			return Status{Code: 128 + int(sig), Signaled: true, Signal: sig}, nil
		}
		return Status{Code: exitErr.ExitCode()}, nil
	default:
		// Wait itself failed even though the child started.
		return Status{Code: ExitLaunchFailed}, err
	}
}
