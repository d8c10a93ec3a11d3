// Package tui provides the primary terminal user interface implementation.
package tui

type state int

const (
	pickState state = iota
	playerState
	errorState
)
