package main

import (
	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	New      NewCmd           `cmd:"" help:"Start a hand, post the blinds and apply scripted actions"`
	Show     ShowCmd          `cmd:"" help:"Print the state of a stored hand"`
	Act      ActCmd           `cmd:"" help:"Apply actions to a stored hand"`
	Undo     UndoCmd          `cmd:"" help:"Remove the last actions of a stored hand"`
	List     ListCmd          `cmd:"" help:"List stored hands"`
	Showdown ShowdownCmd      `cmd:"" help:"Award the pots of a finished hand from the players' cards"`
	Export   ExportCmd        `cmd:"" help:"Write stored hands as PHH files"`
}

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("hhcreator"),
		kong.Description("Build, edit and export no-limit hold'em hand histories"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
