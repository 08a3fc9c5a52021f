package main

import (
	"os"

	"analytics-core/cmd/sqltext/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
