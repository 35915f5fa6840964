package core

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInterpretErrors(t *testing.T) {
	goldenTestSuite{
		"not-found":         {[]string{"nope"}},
		"empty-expansion":   {[]string{"$UNDEFINED_CMD"}},
		"direct-missing":    {[]string{"./missing.sh"}},
		"permission-denied": {[]string{"./notes.txt"}},
		"blank-lines":       {[]string{"", "   ", "\t"}},
	}.Run(t)
}

func TestInterpretStatus(t *testing.T) {
	shell, _ := testShell(t)

	assert.Equal(t, 127, shell.Interpret("nope"))
	assert.Equal(t, 127, shell.LastStatus())

	assert.Equal(t, 126, shell.Interpret("./notes.txt"))

	// A blank line leaves the last status alone.
	assert.Equal(t, 126, shell.Interpret(""))
	assert.Equal(t, 126, shell.LastStatus())

	assert.Equal(t, 0, shell.Interpret("pwd"))
	assert.Equal(t, 0, shell.LastStatus())
}

func TestBuiltinsShadowPath(t *testing.T) {
	shell, _ := testShell(t)
	require.NoError(t, afero.WriteFile(shell.State.fs, "/bin/cd", []byte("#!/bin/sh\n"), 0644))
	require.NoError(t, shell.State.fs.Chmod("/bin/cd", 0755))

	// The builtin runs even though PATH has a cd executable.
	assert.Equal(t, 0, shell.Interpret("cd /tmp"))
	assert.Equal(t, "/tmp", shell.State.Getwd())
}

func TestInterpretExpandsEveryToken(t *testing.T) {
	shell, out := testShell(t)
	shell.State.Env().Setenv("D", "docs")

	assert.Equal(t, 0, shell.Interpret("cd ~/$D"))
	require.Equal(t, 0, shell.Interpret("pwd"))
	assert.Equal(t, "/home/user/docs\n", out.String())
}

func TestPrompt(t *testing.T) {
	shell, _ := testShell(t)

	shell.State.Env().Setenv(EnvPrompt, `\u@\h:\w> `)
	assert.Equal(t, "user@mshbox:~> ", shell.Prompt())

	require.NoError(t, shell.State.Chdir("/tmp"))
	assert.Equal(t, "user@mshbox:/tmp> ", shell.Prompt())

	require.NoError(t, shell.State.Chdir("/home/user/docs"))
	assert.Equal(t, "user@mshbox:~/docs> ", shell.Prompt())

	// Backslash escapes pass through, so color codes work.
	shell.State.Env().Setenv(EnvPrompt, `\033[01;34m\w\033[00m> `)
	assert.Equal(t, "\x1b[01;34m~/docs\x1b[00m> ", shell.Prompt())

	// The default template ends in \$, which depends on the uid.
	dollar := "$"
	if os.Getuid() == 0 {
		dollar = "#"
	}
	shell.State.Env().Unsetenv(EnvPrompt)
	assert.Equal(t, "~/docs "+dollar+" ", shell.Prompt())
}

func TestRunScript(t *testing.T) {
	t.Run("runs-all-lines", func(t *testing.T) {
		shell, out := testShell(t)
		code := shell.RunScript(strings.NewReader("cd docs\npwd\n"))
		assert.Equal(t, 0, code)
		assert.Equal(t, "/home/user/docs\n", out.String())
	})

	t.Run("blank-lines-are-noops", func(t *testing.T) {
		shell, out := testShell(t)
		code := shell.RunScript(strings.NewReader("\n\n   \npwd\n"))
		assert.Equal(t, 0, code)
		assert.Equal(t, "/home/user\n", out.String())
	})

	t.Run("reports-last-status", func(t *testing.T) {
		shell, _ := testShell(t)
		code := shell.RunScript(strings.NewReader("pwd\ncd /nope\n"))
		assert.Equal(t, 1, code)
	})

	t.Run("status-of-last-line-wins", func(t *testing.T) {
		shell, _ := testShell(t)
		code := shell.RunScript(strings.NewReader("cd /nope\npwd\n"))
		assert.Equal(t, 0, code)
	})

	t.Run("exit-stops-interpretation", func(t *testing.T) {
		shell, out := testShell(t)
		code := shell.RunScript(strings.NewReader("exit 5\npwd\n"))
		assert.Equal(t, 5, code)
		assert.Equal(t, "", out.String())
	})

	t.Run("empty-input", func(t *testing.T) {
		shell, _ := testShell(t)
		assert.Equal(t, 0, shell.RunScript(strings.NewReader("")))
	})
}

func TestRunCommand(t *testing.T) {
	shell, _ := testShell(t)

	assert.Equal(t, 0, shell.RunCommand("cd /tmp"))
	assert.Equal(t, "/tmp", shell.State.Getwd())

	assert.Equal(t, 127, shell.RunCommand("nope"))
	assert.Equal(t, 7, shell.RunCommand("exit 7"))
}

func TestShellRun(t *testing.T) {
	state := newTestState(t)
	var out bytes.Buffer
	shell, err := NewShell(state, Options{
		Stdin:  io.NopCloser(strings.NewReader("pwd\nexit 3\npwd\n")),
		Stdout: &out,
		Stderr: &out,
	})
	require.NoError(t, err)
	defer shell.Close()

	assert.Equal(t, 3, shell.Run())
	assert.Equal(t, "/home/user\n", out.String())
	assert.Equal(t, []string{"pwd", "exit 3"}, shell.history)
}

func TestShellRunEOF(t *testing.T) {
	state := newTestState(t)
	var out bytes.Buffer
	shell, err := NewShell(state, Options{
		Stdin:  io.NopCloser(strings.NewReader("cd docs\npwd\n")),
		Stdout: &out,
		Stderr: &out,
	})
	require.NoError(t, err)
	defer shell.Close()

	// Input that ends without an exit terminates the shell with status 0.
	assert.Equal(t, 0, shell.Run())
	assert.Equal(t, "/home/user/docs\n", out.String())
}
