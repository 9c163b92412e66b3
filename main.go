package main

import (
	"os"

	"github.com/asmit/lexiq/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
