//go:build !windows

package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

// registerQuitHandler makes SIGQUIT exit the headless scheduler at once,
// skipping the graceful shutdown that SIGINT and SIGTERM get.
func registerQuitHandler() {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGQUIT)
	go func() {
		<-sigs
		fmt.Fprintln(os.Stderr, "SIGQUIT: stopping immediately")
		os.Exit(1)
	}()
}
