package main

import (
	"os"

	"github.com/UnknownOlympus/locator/cmd/locatorctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
