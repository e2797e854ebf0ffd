package main

import (
	"github.com/alecthomas/kong"
)

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("catalog"),
		kong.Description("A local catalog of coffee products."),
		kong.UsageOnError(),
	)
	err := ctx.Run(&Context{Debug: CLI.Debug, ConfigFile: CLI.Config})
	ctx.FatalIfErrorf(err)
}
