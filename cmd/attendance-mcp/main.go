package main

import (
	"os"

	"attendance-mcp/cmd/attendance-mcp/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
