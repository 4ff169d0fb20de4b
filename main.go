package main

import (
	"fmt"
	"os"

	"github.com/biosecret/voice-todo/app"
)

func main() {
	if err := app.SetupAndRunApp(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
