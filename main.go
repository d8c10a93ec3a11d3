// Package main is the entry point for the seekbar application.
package main

import (
	"github.com/samber/lo"
	"github.com/seekbar-cli/seekbar/cmd"
	"github.com/seekbar-cli/seekbar/config"
	"github.com/seekbar-cli/seekbar/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
