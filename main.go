package main

import (
	"os"

	"github.com/javoire/refkit/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
