package main

import (
	"os"

	"github.com/deidaraiorek/deirake/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
