package transcript

import (
	"context"
	"fmt"
	"io"
	"os/exec"
)

// startCapture spawns the configured PCM capture command and returns
// its stdout. The command dies with the context, which is how a
// recording session is stopped.
func startCapture(ctx context.Context, command []string) (io.ReadCloser, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("transcribe.capture_command is not configured; pipe a transcript on stdin instead")
	}

	cmd := exec.CommandContext(ctx, command[0], command[1:]...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start capture command %q: %w", command[0], err)
	}

	// Reap the process; exit status does not matter once the stream ends
	go cmd.Wait()

	return stdout, nil
}
