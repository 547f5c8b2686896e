package main

import (
	"os"

	"github.com/amirouche/ouverture/internal/poolcli"
)

func main() {
	cmd := poolcli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		os.Exit(poolcli.GetExitCode(err))
	}
}
