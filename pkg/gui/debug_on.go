//go:build imuidebug

package gui

// debugChecks enables structural verification at the end of every frame.
const debugChecks = true
