package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	arg   string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Signin(ctx context.Context) error {
	f.calls = append(f.calls, "signin")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Verify(ctx context.Context, token string) error {
	f.calls = append(f.calls, "verify")
	f.arg = token
	return nil
}
func (f *fakeExec) Resend(ctx context.Context) error { f.calls = append(f.calls, "resend"); return nil }
func (f *fakeExec) Me(ctx context.Context) error     { f.calls = append(f.calls, "me"); return nil }
func (f *fakeExec) Status(ctx context.Context) error { f.calls = append(f.calls, "status"); return nil }
func (f *fakeExec) Update(ctx context.Context) error { f.calls = append(f.calls, "update"); return nil }
func (f *fakeExec) Delete(ctx context.Context) error { f.calls = append(f.calls, "delete"); return nil }
func (f *fakeExec) Daily(ctx context.Context, date string) error {
	f.calls = append(f.calls, "daily")
	f.arg = date
	return nil
}
func (f *fakeExec) Lucky(ctx context.Context, date string) error {
	f.calls = append(f.calls, "lucky")
	f.arg = date
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func silence(t *testing.T) {
	t.Helper()
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })
}

func TestRunREPL_CommandsInOrder(t *testing.T) {
	silence(t)

	input := bufio.NewReader(strings.NewReader(strings.Join([]string{
		"help",
		"signup",
		"verify tok123",
		"",
		"signin",
		"help",
		"me",
		"status",
		"resend",
		"foobar",
		"logout",
		"exit",
		"me",
	}, "\n")))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, input)

	want := []string{"signup", "verify", "signin", "me", "status", "resend", "logout"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if exec.arg != "tok123" {
		t.Fatalf("verify token = %q", exec.arg)
	}
}

func TestRunREPL_AccountAndNumbersCommands(t *testing.T) {
	silence(t)

	input := bufio.NewReader(strings.NewReader("signin\nupdate\ndaily\nlucky 2024-03-20\ndelete\nexit\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, input)

	want := []string{"signin", "update", "daily", "lucky", "delete"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
	if exec.arg != "2024-03-20" {
		t.Fatalf("lucky date = %q", exec.arg)
	}
}

func TestRunREPL_VerifyWithoutTokenAndQuit(t *testing.T) {
	silence(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewReader(strings.NewReader("verify\nquit\nsignup\n")))

	if len(exec.calls) != 1 || exec.calls[0] != "verify" || exec.arg != "" {
		t.Fatalf("unexpected calls: %v arg=%q", exec.calls, exec.arg)
	}
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	silence(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(strings.NewReader("status")))

	if len(exec.calls) != 1 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
