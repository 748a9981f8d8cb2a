//go:build windows

package main

// registerQuitHandler is a no-op: Windows has no SIGQUIT.
func registerQuitHandler() {}
