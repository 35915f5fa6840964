package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// NewEnv creates an empty environment.
func NewEnv() *Env {
	return &Env{}
}

// NewEnvFromList creates an environment from a list of "key=value" entries,
// such as the one returned by os.Environ. Entries without an "=" become
// variables with an empty value.
func NewEnvFromList(environ []string) *Env {
	out := &Env{}

	for _, e := range environ {
		split := strings.SplitN(e, "=", 2)
		key, value := split[0], ""
		if len(split) > 1 {
			value = split[1]
		}
		out.Setenv(key, value)
	}

	return out
}

// Env is the shell's environment snapshot: a mapping from variable names to
// values. It is mutated only by the export and unset builtins and copied into
// every spawned child at the moment of spawn.
type Env struct {
	rw  sync.RWMutex
	env map[string]string
}

// Setenv sets the value of the variable named by the key, overwriting any
// previous value.
func (m *Env) Setenv(key, value string) {
	m.rw.Lock()
	defer m.rw.Unlock()

	if m.env == nil {
		m.env = make(map[string]string)
	}
	m.env[key] = value
}

// Unsetenv removes a single variable. Removing a missing key is not an error.
func (m *Env) Unsetenv(key string) {
	m.rw.Lock()
	defer m.rw.Unlock()
	if m.env != nil {
		delete(m.env, key)
	}
}

// LookupEnv retrieves the value of the variable named by the key. If the
// variable is present the value (which may be empty) is returned and the
// boolean is true, otherwise the boolean is false.
func (m *Env) LookupEnv(key string) (string, bool) {
	m.rw.RLock()
	defer m.rw.RUnlock()

	val, ok := m.env[key]
	return val, ok
}

// Getenv retrieves the value of the variable named by the key, or the empty
// string if it is not present. To distinguish between an empty value and an
// unset variable, use LookupEnv.
func (m *Env) Getenv(key string) string {
	val, _ := m.LookupEnv(key)
	return val
}

// Environ returns a copy of the environment as a sorted list of "key=value"
// entries, the form expected by a child process.
func (m *Env) Environ() []string {
	m.rw.RLock()
	defer m.rw.RUnlock()

	var env []string
	for k, v := range m.env {
		env = append(env, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(env)

	return env
}
