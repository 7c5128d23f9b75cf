package main

import (
	"os"

	"github.com/ritwikg/ctutor/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
