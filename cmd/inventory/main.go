// Command inventory is the console driver for the inventory tracker.
//
// Each invocation loads the inventory file into a fresh catalog, runs one
// command and writes the file back when the command changed it.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
)

func main() {
	a := &app{out: os.Stdout, cost: defaultCost}
	a.registerFlags(flag.CommandLine)

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	commander.Register(commander.HelpCommand(), "")
	commander.Register(commander.FlagsCommand(), "")
	commander.Register(commander.CommandsCommand(), "")
	for _, c := range a.commands() {
		commander.Register(c, "inventory")
	}
	commander.Register(&demoCmd{app: a}, "")

	flag.Parse()
	a.logger = newLogger(a.logLevel)
	os.Exit(int(commander.Execute(context.Background())))
}
