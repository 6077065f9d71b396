// Testing Strategy Design Decision:
//
// The cmd/ package contains CLI integration tests that exercise the full stack:
// command parsing -> extension -> library -> search -> store -> SQLite.
//
// Each test gets its own working directory and HOME, so the global config
// and audit log never leak between tests or into the developer's home.

package cmd

import (
	"encoding/json"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	binaryPath string
	buildOnce  sync.Once
	buildErr   error
)

// buildBinary compiles the stash binary once for all tests.
func buildBinary(t *testing.T) string {
	t.Helper()

	buildOnce.Do(func() {
		tmpDir, err := os.MkdirTemp("", "stash-test-bin-*")
		if err != nil {
			buildErr = err
			return
		}

		binaryName := "stash"
		if os.PathSeparator == '\\' {
			binaryName = "stash.exe"
		}
		binaryPath = filepath.Join(tmpDir, binaryName)

		// Project root is the parent of cmd/
		projectRoot := filepath.Dir(mustGetwd())

		cmd := exec.Command("go", "build", "-o", binaryPath, ".")
		cmd.Dir = projectRoot
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = &buildError{err: err, output: string(out)}
			return
		}
	})

	if buildErr != nil {
		t.Fatalf("failed to build binary: %v", buildErr)
	}
	return binaryPath
}

type buildError struct {
	err    error
	output string
}

func (e *buildError) Error() string {
	return e.err.Error() + "\n" + e.output
}

func mustGetwd() string {
	dir, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return dir
}

// testEnv holds test environment state.
type testEnv struct {
	t      *testing.T
	dir    string
	home   string
	binary string
	owner  string
}

// newTestEnv creates a temporary directory with an initialised stash and a
// registered user "alice", who is the default owner.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	env := newBareEnv(t)
	env.run("init")
	env.run("user", "add", "alice")
	return env
}

// newBareEnv creates the directories without running init.
func newBareEnv(t *testing.T) *testEnv {
	t.Helper()
	return &testEnv{
		t:      t,
		dir:    t.TempDir(),
		home:   t.TempDir(),
		binary: buildBinary(t),
		owner:  "alice",
	}
}

func (e *testEnv) command(args ...string) *exec.Cmd {
	cmd := exec.Command(e.binary, args...)
	cmd.Dir = e.dir
	cmd.Env = append(os.Environ(),
		"HOME="+e.home,
		"USERPROFILE="+e.home,
		"STASH_OWNER="+e.owner,
		"STASH_DIR=",
	)
	return cmd
}

// run executes stash with the given args and returns combined output.
func (e *testEnv) run(args ...string) string {
	e.t.Helper()
	out, err := e.runErr(args...)
	if err != nil {
		e.t.Fatalf("stash %v failed: %v\noutput: %s", args, err, out)
	}
	return out
}

// runErr executes stash and returns combined output and any error.
func (e *testEnv) runErr(args ...string) (string, error) {
	e.t.Helper()
	out, err := e.command(args...).CombinedOutput()
	return string(out), err
}

// runStdin executes stash with stdin input.
func (e *testEnv) runStdin(input string, args ...string) string {
	e.t.Helper()
	cmd := e.command(args...)
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	if err != nil {
		e.t.Fatalf("stash %v failed: %v\noutput: %s", args, err, out)
	}
	return string(out)
}

// runJSON executes stash with -o json and decodes stdout into v.
func (e *testEnv) runJSON(v any, args ...string) {
	e.t.Helper()
	out, err := e.command(append(args, "-o", "json")...).Output()
	require.NoError(e.t, err, "stash %v", args)
	require.NoError(e.t, json.Unmarshal(out, v), "decode %q", out)
}

// as returns a copy of the environment acting as owner.
func (e *testEnv) as(owner string) *testEnv {
	c := *e
	c.owner = owner
	return &c
}

// contains checks if output contains expected string.
func (e *testEnv) contains(output, expected string) {
	e.t.Helper()
	assert.Contains(e.t, output, expected)
}

// notContains checks that output does not contain s.
func (e *testEnv) notContains(output, s string) {
	e.t.Helper()
	assert.NotContains(e.t, output, s)
}

// addNote creates a note and returns its id.
func (e *testEnv) addNote(title, content string, flags ...string) string {
	e.t.Helper()
	var n struct {
		ID string `json:"_id"`
	}
	e.runJSON(&n, append([]string{"note", "add", title, content}, flags...)...)
	require.NotEmpty(e.t, n.ID)
	return n.ID
}

// addBookmark creates a bookmark and returns its id.
func (e *testEnv) addBookmark(url string, flags ...string) string {
	e.t.Helper()
	var b struct {
		ID string `json:"_id"`
	}
	e.runJSON(&b, append([]string{"bookmark", "add", url}, flags...)...)
	require.NotEmpty(e.t, b.ID)
	return b.ID
}
