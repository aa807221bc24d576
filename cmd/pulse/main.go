package main

import (
	"github.com/larsks/pilab/internal/cli"
	_ "github.com/larsks/pilab/internal/logsetup"
	"github.com/larsks/pilab/internal/pulse"
)

func main() {
	cli.StandardMain(
		func() cli.Configurable { return pulse.NewConfig() },
		pulse.NewHandler(),
	)
}
