package main

import (
	"fmt"
	"os"

	"customer-support-agent/cmd/supportctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
