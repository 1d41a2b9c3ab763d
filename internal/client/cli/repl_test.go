package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool
	meErr    error
	calls    []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Me(context.Context) error {
	f.calls = append(f.calls, "me")
	return f.meErr
}
func (f *fakeExec) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func capturePrints(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_Commands(t *testing.T) {
	lines := capturePrints(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"register",
		"",
		"login",
		"help",
		"me",
		"logout",
		"foobar",
		"exit",
		"me",
	}, "\n"))

	exec := &fakeExec{meErr: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "(x)" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"register", "login", "me", "logout"}, exec.calls)
	assert.Contains(t, *lines, "Available commands: register, login, exit")
	assert.Contains(t, *lines, "Available commands: me, logout, exit")
	assert.Contains(t, *lines, "error: boom")
	assert.Contains(t, *lines, "Unknown command: foobar")
	assert.Contains(t, *lines, "authctl (x)> ")
	assert.Equal(t, "Bye!", (*lines)[len(*lines)-1])
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	capturePrints(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewScanner(strings.NewReader("login")))

	assert.Equal(t, []string{"login"}, exec.calls)
}
