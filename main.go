/*
This is an example of application that will use the
engine package to test things out
*/
package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/anima-gfx/engine"
	"github.com/spaghettifunk/anima-gfx/engine/core"
	_ "github.com/spaghettifunk/anima-gfx/engine/renderer/vulkan"
	"github.com/spaghettifunk/anima-gfx/testbed"
)

func main() {
	configPath := flag.String("config", "anima.toml", "path to the TOML configuration file")
	flag.Parse()

	tb := testbed.NewTestGame(*configPath)

	engine, err := engine.New(tb.Game)
	if err != nil {
		core.LogFatal("failed to load configuration: %s", err)
	}

	if err := engine.Initialize(); err != nil {
		core.LogFatal("failed to initialize: %s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// start shutdown goroutine
	go func() {
		// capture sigterm and other system call here
		<-sigCh
		engine.Shutdown()
	}()

	// run engine
	if err := engine.Run(); err != nil {
		core.LogFatal("engine stopped with error: %s", err)
	}
}
