// main is the entry point for the grantscope CLI.
package main

import (
	"github.com/grantscope/grantscope/cmd"
	"github.com/grantscope/grantscope/internal/contract"
)

func main() {
	defer func() { _ = cmd.CloseStore() }()

	if err := cmd.Execute(); err != nil {
		contract.LogFatal("Command failed", err)
	}
}
