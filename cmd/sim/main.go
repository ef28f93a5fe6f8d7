package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/NUSSETO/Graduate-Survival/internal/config"
	"github.com/NUSSETO/Graduate-Survival/internal/game"
	"github.com/NUSSETO/Graduate-Survival/internal/upgrade"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "run":
		if err := cmdRun(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "run failed:", err)
			os.Exit(1)
		}
	case "costs":
		if err := cmdCosts(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "costs failed:", err)
			os.Exit(1)
		}
	default:
		printUsage()
		os.Exit(2)
	}
}

func cmdRun(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	ticks := fs.Int("ticks", 3600, "maximum ticks to simulate")
	clicks := fs.Int("clicks", 1, "manual actions attempted per tick")
	seed := fs.Int64("seed", 1337, "random event seed")
	cfgPath := fs.String("config", "", "optional game config for the start block")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *ticks < 0 || *clicks < 0 {
		return fmt.Errorf("ticks and clicks must be non-negative")
	}

	bal := config.DefaultBalance()
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		bal = cfg.Start
	}

	res := simulate(bal, upgrade.Default(), game.NewRand(true, *seed), *ticks, *clicks)
	printResult(out, res)
	return nil
}

func cmdCosts(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("costs", flag.ContinueOnError)
	levels := fs.Int("levels", 10, "highest level to print")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *levels < 0 {
		return fmt.Errorf("levels must be non-negative")
	}

	cat := upgrade.Default()
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprint(tw, "level\t")
	for _, d := range cat {
		fmt.Fprintf(tw, "%s\t", d.ID)
	}
	fmt.Fprintln(tw)
	for lvl := 0; lvl <= *levels; lvl++ {
		fmt.Fprintf(tw, "%d\t", lvl)
		for _, d := range cat {
			fmt.Fprintf(tw, "%d\t", upgrade.Cost(d, lvl))
		}
		fmt.Fprintln(tw)
	}
	return tw.Flush()
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage:")
	fmt.Fprintln(os.Stderr, "  sim run [-ticks N] [-clicks K] [-seed S] [-config game_config.yml]")
	fmt.Fprintln(os.Stderr, "  sim costs [-levels N]")
}
