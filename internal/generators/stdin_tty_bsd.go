//go:build darwin || freebsd || netbsd || openbsd
// +build darwin freebsd netbsd openbsd

package generators

import (
	"os"

	"golang.org/x/sys/unix"
)

func isTerminalStdin() bool {
	_, err := unix.IoctlGetTermios(int(os.Stdin.Fd()), unix.TIOCGETA)
	return err == nil
}
