//go:build linux
// +build linux

package generators

import (
	"os"

	"golang.org/x/sys/unix"
)

// isTerminalStdin reports whether stdin is an interactive terminal rather
// than a pipe or redirected file — the stdin generator refuses to read
// from a terminal, matching the reference engine's is_terminal() gate.
func isTerminalStdin() bool {
	_, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), unix.TCGETS)
	return err == nil
}
