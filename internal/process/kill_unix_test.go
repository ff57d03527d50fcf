//go:build !windows

package process

import (
	"errors"
	"os/exec"
	"testing"
	"time"
)

func TestKillProcessGroup_KillsChildren(t *testing.T) {
	t.Parallel()

	sh, err := exec.LookPath("sh")
	if err != nil {
		t.Skip("sh not available")
	}

	// The shell leads the group and forks a sleeping child.
	cmd := exec.Command(sh, "-c", "sleep 30 & wait")
	SetProcessGroup(cmd)
	if err := cmd.Start(); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	done := make(chan error, 1)
	go func() { done <- cmd.Wait() }()

	KillProcessGroup(cmd.Process.Pid)

	select {
	case err := <-done:
		var exitErr *exec.ExitError
		if !errors.As(err, &exitErr) {
			t.Errorf("Wait() error = %v, want *exec.ExitError", err)
		}
	case <-time.After(5 * time.Second):
		_ = cmd.Process.Kill()
		t.Fatal("process group still running after KillProcessGroup")
	}
}
