package main

import (
	"github.com/larsks/pilab/internal/cli"
	_ "github.com/larsks/pilab/internal/logsetup"
	"github.com/larsks/pilab/internal/touchtoggle"
)

func main() {
	cli.StandardMain(
		func() cli.Configurable { return touchtoggle.NewConfig() },
		touchtoggle.NewHandler(),
	)
}
