package main

import (
	"os"

	"ai-assistant-client/internal/cli"
)

func main() {
	os.Exit(cli.Execute(cli.Options{}, os.Args[1:]))
}
