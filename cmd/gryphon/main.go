package main

import (
	"os"

	"github.com/cwbudde/go-gryphon/cmd/gryphon/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
