//go:build !linux

package terminal

// resetTerminalMode is a no-op where termios ioctls are not wired; tcell's Fini and the
// saved x/term state cover restoration
func resetTerminalMode() {}
