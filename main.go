package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"vigia/cmd"
	"vigia/internal/api"
	"vigia/internal/config"
	"vigia/internal/engine"
	"vigia/tui"
)

const version = "0.1.0"

func main() {
	if len(os.Args) > 1 && cmd.IsSubcommand(os.Args[1]) {
		cmd.Execute(os.Args[1:])
		return
	}

	serverURL := flag.String("server", "", "Backend URL override")
	themeName := flag.String("theme", "", "Theme override")
	cfgPath := flag.String("config", "", "Config file path override")
	flag.Parse()

	cfg := loadConfig(*cfgPath)
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}
	if *themeName != "" {
		cfg.Theme = *themeName
	}

	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "vigia needs a terminal; see 'vigia probe' for scripted use")
		os.Exit(1)
	}

	client := api.NewClient(cfg.ServerURL)
	poller := engine.NewPoller(client, cfg.PollInterval, cfg.HealthInterval, cfg.MaxHistory)
	if err := poller.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer poller.Stop()

	model := tui.NewAppModel(cfg, client, poller, version)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithReportFocus())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) *config.Config {
	if path == "" {
		p, err := config.GetConfigPath()
		if err != nil {
			return config.DefaultConfig()
		}
		path = p
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}
