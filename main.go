package main

import (
	"github.com/atma-cli/atma/cmd"
	"github.com/atma-cli/atma/config"
	"github.com/atma-cli/atma/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())
	cmd.Execute()
}
