// Command mcj is the micro-cap trading journal CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"slices"

	"github.com/etnz/microcap/cmd"
	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"
)

func main() {
	// Shell completion, a no-op outside completion mode. Run
	// COMP_INSTALL=1 mcj to install it.
	subs := make(map[string]*complete.Command, len(cmd.Names()))
	for _, name := range cmd.Names() {
		subs[name] = &complete.Command{}
	}
	completion := &complete.Command{
		Sub: subs,
		Flags: map[string]complete.Predictor{
			"C":    predict.Dirs("*"),
			"cash": predict.Something,
			"v":    predict.Nothing,
		},
	}
	completion.Complete("mcj")

	commander := subcommands.NewCommander(flag.CommandLine, "mcj")
	cmd.Register(commander)
	flag.Parse()
	cmd.Setup()

	// Unknown subcommands fall through to mcj-<name> executables, in the
	// manner of git extensions.
	builtins := append(cmd.Names(), "help", "flags", "commands")
	if name := flag.Arg(0); name != "" && !slices.Contains(builtins, name) {
		if err := cmd.RunExtension(name, flag.Args()[1:]); err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			os.Exit(1)
		}
		return
	}

	os.Exit(int(commander.Execute(context.Background())))
}
