package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	unlocked bool

	calls []string
}

func (f *fakeExec) isUnlocked() bool { return f.unlocked }
func (f *fakeExec) Status(ctx context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeExec) Unlock(ctx context.Context) error {
	f.calls = append(f.calls, "unlock")
	f.unlocked = true
	return nil
}
func (f *fakeExec) SetPin(ctx context.Context) error {
	f.calls = append(f.calls, "setpin")
	return nil
}
func (f *fakeExec) VerifyPin(ctx context.Context) error {
	f.calls = append(f.calls, "verifypin")
	return nil
}
func (f *fakeExec) RemovePin(ctx context.Context) error {
	f.calls = append(f.calls, "removepin")
	return nil
}
func (f *fakeExec) Settings(ctx context.Context) error {
	f.calls = append(f.calls, "settings")
	return nil
}
func (f *fakeExec) Protect(ctx context.Context) error {
	f.calls = append(f.calls, "protect")
	return nil
}
func (f *fakeExec) Reveal(ctx context.Context) error {
	f.calls = append(f.calls, "reveal")
	return nil
}
func (f *fakeExec) EncryptAll(ctx context.Context) error {
	f.calls = append(f.calls, "encrypt-all")
	return nil
}
func (f *fakeExec) DecryptAll(ctx context.Context) error {
	f.calls = append(f.calls, "decrypt-all")
	return nil
}
func (f *fakeExec) Queue(ctx context.Context) error {
	f.calls = append(f.calls, "queue")
	return nil
}
func (f *fakeExec) Sync(ctx context.Context) error { f.calls = append(f.calls, "sync"); return nil }
func (f *fakeExec) Cache(ctx context.Context) error {
	f.calls = append(f.calls, "cache")
	return nil
}
func (f *fakeExec) ClearExpired(ctx context.Context) error {
	f.calls = append(f.calls, "clear-expired")
	return nil
}
func (f *fakeExec) Wipe(ctx context.Context) error { f.calls = append(f.calls, "wipe"); return nil }

func TestRunREPL_UnlockFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"unlock",
		"status",
		"protect",
		"reveal",
		"queue",
		"sync",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{unlocked: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"unlock", "status", "protect", "reveal", "queue", "sync"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}
}

func TestRunREPL_LockedCommandsAreGated(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"protect",
		"reveal",
		"wipe",
		"settings",
		"status",
		"quit",
	}, "\n"))

	exec := &fakeExec{unlocked: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	want := []string{"status"}
	if len(exec.calls) != len(want) || exec.calls[0] != "status" {
		t.Fatalf("locked commands leaked through: %v", exec.calls)
	}
}

func TestRunREPL_EmptyLineAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("\n\nquit\n")
	exec := &fakeExec{unlocked: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
