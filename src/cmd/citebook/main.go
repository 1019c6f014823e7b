package main

import (
	"fmt"
	"os"

	"citebook/src/cmd/citebook/citecmd"
)

var rootCmd = citecmd.New()

func execute() error {
	return rootCmd.Execute()
}

func main() {
	if err := execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, citecmd.Message(err))
		os.Exit(1)
	}
}
