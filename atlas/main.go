package main

import (
	"fmt"
	"os"

	"github.com/davidkohl/stratus/atlas/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(3)
	}
	os.Exit(cmd.ExitCode)
}
