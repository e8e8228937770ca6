package main

import (
	"os"

	_ "time/tzdata"

	"mascotd/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
