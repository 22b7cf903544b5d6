package main

import (
	"os"

	"github.com/ahkohd/oyo/cmd"
	"github.com/ahkohd/oyo/internal/logging"
)

func main() {
	defer logging.RecoverPanic("main", func() {
		os.Exit(2)
	})

	cmd.Execute()
}
