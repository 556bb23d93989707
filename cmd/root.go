package cmd

import (
	"fmt"
	"os"
)

// knownSubcommands is the set of CLI subcommands that bypass the TUI.
var knownSubcommands = map[string]bool{
	"serve":   true,
	"probe":   true,
	"config":  true,
	"themes":  true,
	"version": true,
	"help":    true,
}

// IsSubcommand returns true if the argument is a known CLI subcommand.
func IsSubcommand(arg string) bool {
	return knownSubcommands[arg]
}

// Execute dispatches to the appropriate CLI subcommand handler.
func Execute(args []string) {
	if len(args) == 0 {
		return
	}

	switch args[0] {
	case "serve":
		serveCmd(args[1:])
	case "probe":
		probeCmd(args[1:])
	case "config":
		configCmd(args[1:])
	case "themes":
		themesCmd()
	case "version":
		fmt.Println("vigia v0.1.0")
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`vigia - vehicle detection monitor

Usage:
  vigia                     Launch TUI dashboard
  vigia --server URL        Launch against a specific backend
  vigia --theme NAME        Launch with theme override
  vigia serve               Run the detection backend
  vigia probe               Query a backend once and print the result
  vigia config <cmd>        Manage configuration
  vigia themes              List available themes
  vigia version             Show version
  vigia help                Show this help

Serve:
  vigia serve [--listen ADDR] [--seed N]   Run the simulated detection backend

Probe:
  vigia probe [--server URL] [--objects]   Print backend health and statistics

Config Commands:
  vigia config path                Show config directory path
  vigia config theme NAME          Set default theme
  vigia config server URL          Set default backend URL`)
}
