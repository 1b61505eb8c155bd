// Package game implements the Tetris rules: the board, the seven tetrominoes and their
// rotation table, shape randomizers, scoring, leveling and the phase state machine
// (ready, countdown, spawning, falling, locking, clearing, game over, finished).
//
// A Game is owned by one goroutine. Time enters only through Update, so gravity, lock delay
// and countdown are deterministic under an injected clock.
package game
