package main

import (
	"os"

	"github.com/alfredasare/cloud-dev-final-project/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
