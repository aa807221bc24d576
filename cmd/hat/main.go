package main

import (
	"github.com/larsks/pilab/internal/cli"
	"github.com/larsks/pilab/internal/hat"
	_ "github.com/larsks/pilab/internal/logsetup"
)

func main() {
	cli.StandardMain(
		func() cli.Configurable { return hat.NewConfig() },
		hat.NewHandler(),
	)
}
