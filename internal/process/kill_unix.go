//go:build !windows

package process

import (
	"os/exec"
	"syscall"
)

// SetProcessGroup makes cmd the leader of a new process group.
// Must be called before cmd.Start.
func SetProcessGroup(cmd *exec.Cmd) {
	if cmd.SysProcAttr == nil {
		cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	cmd.SysProcAttr.Setpgid = true
}

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID).
func KillProcessGroup(pid int) {
	// Best-effort; callers also kill the leader directly.
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
