package syscmd

import (
	"os/exec"
	"syscall"
)

// https://learn.microsoft.com/en-us/windows/win32/procthread/process-creation-flags
//
// CREATE_NO_WINDOW:
// The process is a console application that is being run without
// a console window. Therefore, the console handle for the
// application is not set.
const createNoWindow = 0x08000000

func hideWindow(cmd *exec.Cmd) {
	cmd.SysProcAttr = &syscall.SysProcAttr{
		HideWindow:    true,
		CreationFlags: createNoWindow,
	}
}
