// Package main is the entry point for the pixeltube application.
package main

import (
	"github.com/pixeltube-cli/pixeltube/cmd"
	"github.com/pixeltube-cli/pixeltube/config"
	"github.com/pixeltube-cli/pixeltube/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
