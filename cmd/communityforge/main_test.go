package main

import (
	"bytes"
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"testing"
	"time"
)

func TestRootCommandStructure(t *testing.T) {
	root := newRootCmd()

	want := map[string]bool{
		"run":      false,
		"tui":      false,
		"policy":   false,
		"workflow": false,
		"history":  false,
	}
	for _, sub := range root.Commands() {
		if _, ok := want[sub.Name()]; ok {
			want[sub.Name()] = true
		}
	}
	for name, found := range want {
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestPolicyCommandOutput(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"policy"})

	var buf bytes.Buffer
	root.SetOut(&buf)
	// The policy command writes to stdout directly; redirect it.
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe: %v", err)
	}
	os.Stdout = w

	execErr := root.Execute()

	w.Close()
	os.Stdout = old
	var out bytes.Buffer
	if _, err := out.ReadFrom(r); err != nil {
		t.Fatalf("reading output: %v", err)
	}

	if execErr != nil {
		t.Fatalf("policy command failed: %v", execErr)
	}
	if !strings.Contains(out.String(), "F2P Policy") {
		t.Error("policy output missing policy heading")
	}
	if !strings.Contains(out.String(), "No Pay-to-Win") {
		t.Error("policy output missing pay-to-win principle")
	}
}

func TestWorkflowCommandWritesFiles(t *testing.T) {
	dir := t.TempDir()
	root := newRootCmd()
	root.SetArgs([]string{"workflow", "--dir", dir})

	if err := root.Execute(); err != nil {
		t.Fatalf("workflow command failed: %v", err)
	}

	for _, name := range []string{"agent_team.yml", "build.yml"} {
		if _, err := os.Stat(dir + "/" + name); err != nil {
			t.Errorf("missing workflow file %s: %v", name, err)
		}
	}
}

// TestSignalContextCancellation verifies that signal.NotifyContext
// produces a context that cancels when a signal is received.
func TestSignalContextCancellation(t *testing.T) {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGUSR1)
	defer stop()

	if err := syscall.Kill(os.Getpid(), syscall.SIGUSR1); err != nil {
		t.Fatalf("failed to send SIGUSR1: %v", err)
	}

	select {
	case <-ctx.Done():
	case <-time.After(1 * time.Second):
		t.Fatal("context did not cancel after SIGUSR1")
	}

	if err := ctx.Err(); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
