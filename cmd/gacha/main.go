// Command gacha draws items from the category pools, tracks repeats and token
// points across sessions, and reconciles progression from an exported history.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
)

type command struct {
	summary string
	run     func(args []string, stdout, stderr io.Writer) error
}

var commands = map[string]command{
	"draw":      {"pull items and print the results", cmdDraw},
	"points":    {"print the token point balance", cmdPoints},
	"reset":     {"clear repeats and points", cmdReset},
	"reconcile": {"rebuild progression from a history CSV", cmdReconcile},
	"simulate":  {"Monte Carlo a request without touching progression", cmdSimulate},
	"watch":     {"watch the pool directory and log edits", cmdWatch},
	"presets":   {"list rarity presets", cmdPresets},
	"check":     {"parse every pool file and report problems", cmdCheck},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "help" {
		usage(stderr)
		return 2
	}
	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n", args[0])
		usage(stderr)
		return 2
	}
	if err := cmd.run(args[1:], stdout, stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 2
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: gacha <command> [flags]")
	fmt.Fprintln(w, "\nCommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].summary)
	}
}
