//go:build !imuidebug

package gui

const debugChecks = false
