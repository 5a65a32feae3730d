package main

import (
	"fmt"
	"os"

	"duo-tasks/internal/cli"
	"duo-tasks/internal/config"
)

func main() {
	root := cli.NewRootCommand(config.NewLoader())
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
