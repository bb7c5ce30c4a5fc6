package main

import (
	"os"

	"github.com/spigell/hh-recruiter/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
