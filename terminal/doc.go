// Package terminal owns the raw-mode terminal for the game.
//
// Features:
//   - tcell screen with the cursor hidden and the alternate screen active
//   - Normalized key, resize and close events independent of tcell types
//   - Config-friendly key names ("left", "space", "ctrl_c", single characters)
//   - Clean terminal restoration on exit, panic and signal paths
//   - In-memory simulation screen for renderer and loop tests
package terminal
