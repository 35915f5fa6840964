package core

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestState(t *testing.T) *State {
	t.Helper()

	fsys := afero.NewMemMapFs()
	for _, dir := range []string{"/home/user/docs", "/tmp", "/bin"} {
		require.NoError(t, fsys.MkdirAll(dir, 0755))
	}
	require.NoError(t, afero.WriteFile(fsys, "/home/user/notes.txt", []byte("notes\n"), 0644))

	env := NewEnvFromList([]string{
		"HOME=/home/user",
		"PATH=/bin",
		"USER=user",
		"HOSTNAME=mshbox",
	})
	return NewState(fsys, env, "/home/user")
}

func TestChdir(t *testing.T) {
	cases := []struct {
		name    string
		dir     string
		wantDir string
		wantErr string
	}{
		{"absolute", "/tmp", "/tmp", ""},
		{"relative", "docs", "/home/user/docs", ""},
		{"dot-dot", "docs/..", "/home/user", ""},
		{"trailing-slash", "/tmp/", "/tmp", ""},
		{"missing", "/nope", "", "/nope: no such file or directory"},
		{"missing-relative", "nope", "", "/home/user/nope: no such file or directory"},
		{"file", "notes.txt", "", "/home/user/notes.txt: not a directory"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			state := newTestState(t)
			err := state.Chdir(tc.dir)

			if tc.wantErr != "" {
				assert.EqualError(t, err, tc.wantErr)
				assert.Equal(t, "/home/user", state.Getwd(), "failed chdir must not move")
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tc.wantDir, state.Getwd())
		})
	}
}

func TestChdirPrev(t *testing.T) {
	state := newTestState(t)
	assert.Equal(t, "/home/user", state.PrevWd())

	require.NoError(t, state.Chdir("/tmp"))
	assert.Equal(t, "/home/user", state.PrevWd())

	require.NoError(t, state.Chdir("/bin"))
	assert.Equal(t, "/tmp", state.PrevWd())

	// A failed chdir leaves both directories alone.
	assert.Error(t, state.Chdir("/nope"))
	assert.Equal(t, "/bin", state.Getwd())
	assert.Equal(t, "/tmp", state.PrevWd())
}

func TestAbs(t *testing.T) {
	state := newTestState(t)

	assert.Equal(t, "/etc", state.Abs("/etc"))
	assert.Equal(t, "/home/user/docs", state.Abs("docs"))
	assert.Equal(t, "/home/user", state.Abs("."))
	assert.Equal(t, "/home", state.Abs(".."))
	assert.Equal(t, "/home/user/docs", state.Abs("./docs/"))
}

func TestHome(t *testing.T) {
	state := newTestState(t)
	assert.Equal(t, "/home/user", state.Home())

	state.Env().Unsetenv(EnvHome)
	assert.Equal(t, "", state.Home())
}
