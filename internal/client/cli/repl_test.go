package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"
)

type stubExec struct {
	loggedIn bool
	calls    []string
}

func (s *stubExec) isLoggedIn() bool                   { return s.loggedIn }
func (s *stubExec) Register(ctx context.Context) error { s.calls = append(s.calls, "register"); return nil }
func (s *stubExec) Login(ctx context.Context) error    { s.calls = append(s.calls, "login"); return nil }
func (s *stubExec) Logout(ctx context.Context) error   { s.calls = append(s.calls, "logout"); return nil }
func (s *stubExec) Forget(ctx context.Context) error   { s.calls = append(s.calls, "forget"); return nil }
func (s *stubExec) Whoami(ctx context.Context) error   { s.calls = append(s.calls, "whoami"); return nil }

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func runWithInput(t *testing.T, exec execIface, input string) {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(input))
	runREPL(context.Background(), exec, func() string { return "" }, scanner)
}

func TestREPL_Dispatch(t *testing.T) {
	captureOutput(t)
	exec := &stubExec{}

	runWithInput(t, exec, "login\nregister\nforget\nwhoami\nlogout\nexit\n")

	want := []string{"login", "register", "forget", "whoami", "logout"}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	for i := range want {
		if exec.calls[i] != want[i] {
			t.Errorf("call %d = %q, want %q", i, exec.calls[i], want[i])
		}
	}
}

func TestREPL_HelpDependsOnLoginState(t *testing.T) {
	lines := captureOutput(t)

	runWithInput(t, &stubExec{loggedIn: false}, "help\nexit\n")
	joined := strings.Join(*lines, "")
	if !strings.Contains(joined, "login, register") {
		t.Errorf("logged-out help missing: %q", joined)
	}

	*lines = nil
	runWithInput(t, &stubExec{loggedIn: true}, "help\nexit\n")
	joined = strings.Join(*lines, "")
	if !strings.Contains(joined, "whoami, logout") {
		t.Errorf("logged-in help missing: %q", joined)
	}
}

func TestREPL_UnknownCommand(t *testing.T) {
	lines := captureOutput(t)

	runWithInput(t, &stubExec{}, "frobnicate\nexit\n")

	joined := strings.Join(*lines, "")
	if !strings.Contains(joined, "Unknown command: frobnicate") {
		t.Errorf("missing unknown-command message: %q", joined)
	}
}

func TestREPL_ExitsOnEOF(t *testing.T) {
	captureOutput(t)
	exec := &stubExec{}

	runWithInput(t, exec, "login\n")

	if len(exec.calls) != 1 || exec.calls[0] != "login" {
		t.Errorf("calls = %v", exec.calls)
	}
}
