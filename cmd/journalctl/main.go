package main

import (
	"os"

	"github.com/Nateight8/trading-mongoparl/cmd/journalctl/cmd"
)

func main() {
	if err := cmd.NewRootCmd(os.Stdout).Execute(); err != nil {
		os.Exit(1)
	}
}
