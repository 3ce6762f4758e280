package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
)

// version is set with -ldflags at release time.
var version = "dev"

func main() {
	app := newApp()
	if err := fang.Execute(
		context.Background(),
		newRootCommand(app),
		fang.WithVersion(version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}
