package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func ExampleExpand() {
	env := NewEnv()
	env.Setenv("HOME", "/home/user")
	env.Setenv("GREETING", "hello")

	fmt.Println(Expand(env, "~/docs"))
	fmt.Println(Expand(env, "$GREETING-world"))
	fmt.Println(Expand(env, "${GREETING}world"))
	fmt.Println(Expand(env, "$UNDEFINED."))

	// Output: /home/user/docs
	// hello-world
	// helloworld
	// .
}

func TestExpandTilde(t *testing.T) {
	env := NewEnvFromList([]string{"HOME=/home/user"})
	noHome := NewEnv()

	cases := []struct {
		name     string
		env      *Env
		token    string
		expected string
	}{
		{"bare", env, "~", "/home/user"},
		{"slash", env, "~/docs", "/home/user/docs"},
		{"named-user", env, "~root", "~root"},
		{"named-user-path", env, "~root/x", "~root/x"},
		{"interior", env, "a~b", "a~b"},
		{"trailing", env, "dir~", "dir~"},
		{"no-home-bare", noHome, "~", "~"},
		{"no-home-slash", noHome, "~/docs", "~/docs"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Expand(tc.env, tc.token))
		})
	}
}

func TestExpandVars(t *testing.T) {
	env := NewEnvFromList([]string{
		"HOME=/home/user",
		"X=1",
		"EMPTY=",
		"REF=$X",
		"with_underscore=ok",
	})

	cases := []struct {
		name     string
		token    string
		expected string
	}{
		{"plain", "plain", "plain"},
		{"whole", "$X", "1"},
		{"embedded", "a$X!b", "a1!b"},
		{"prefix", "$HOME/x", "/home/user/x"},
		{"unset", "$UNDEFINED", ""},
		{"unset-prefix", "$UNDEFINED/x", "/x"},
		{"empty-value", "a${EMPTY}b", "ab"},
		{"braces", "${X}4", "14"},
		{"unclosed-brace", "${X", "${X"},
		{"empty-braces", "${}", "${}"},
		{"digit-start", "$9lives", "$9lives"},
		{"underscore", "$with_underscore", "ok"},
		{"trailing-dollar", "me$", "me$"},
		{"double-dollar", "$$", "$$"},
		{"adjacent", "$X$X", "11"},
		{"no-rescan", "$REF", "$X"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Expand(env, tc.token))
		})
	}
}

func TestExpandOrder(t *testing.T) {
	// The tilde form is handled before variables, so a variable that
	// expands to "~" stays a literal tilde.
	env := NewEnvFromList([]string{"HOME=/home/user", "TILDE=~"})

	assert.Equal(t, "~", Expand(env, "$TILDE"))
}
