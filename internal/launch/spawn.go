package launch

import (
	"os"
	"os/exec"
)

// Spawn starts the program with stdio passed through and returns its pid.
// The child is released immediately: it is never waited on, signalled or
// terminated by us, whatever happens to the rest of the run.
func Spawn(command string, args []string) (int, error) {
	cmd := exec.Command(command, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return 0, err
	}
	pid := cmd.Process.Pid
	if err := cmd.Process.Release(); err != nil {
		return 0, err
	}
	return pid, nil
}
