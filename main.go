package main

import (
	"os"

	"github.com/bmoura/tempotrack/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
