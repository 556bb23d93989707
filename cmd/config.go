package cmd

import (
	"fmt"
	"net/url"
	"os"

	"vigia/internal/config"
	"vigia/tui/styles"
)

func configCmd(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: vigia config <path|theme|server>")
		os.Exit(1)
	}

	switch args[0] {
	case "path":
		configPath()
	case "theme":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: vigia config theme NAME")
			os.Exit(1)
		}
		configSetTheme(args[1])
	case "server":
		if len(args) < 2 {
			fmt.Fprintln(os.Stderr, "Usage: vigia config server URL")
			os.Exit(1)
		}
		configSetServer(args[1])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n", args[0])
		fmt.Fprintln(os.Stderr, "Usage: vigia config <path|theme|server>")
		os.Exit(1)
	}
}

func configPath() {
	dir, err := config.GetConfigDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(dir)
}

func configSetTheme(name string) {
	// Validate the theme name exists
	if styles.GetThemeByName(name) == nil {
		fmt.Fprintf(os.Stderr, "Error: unknown theme %q\n", name)
		fmt.Fprintln(os.Stderr, "Run 'vigia themes' to see available themes.")
		os.Exit(1)
	}

	cfg := loadOrDefaultConfig()
	cfg.Theme = name
	saveConfig(cfg)

	fmt.Printf("Default theme set to %q.\n", name)
}

func configSetServer(raw string) {
	u, err := url.Parse(raw)
	if err != nil || u.Scheme == "" || u.Host == "" {
		fmt.Fprintf(os.Stderr, "Error: invalid server URL %q\n", raw)
		fmt.Fprintln(os.Stderr, "Expected something like http://localhost:5000")
		os.Exit(1)
	}

	cfg := loadOrDefaultConfig()
	cfg.ServerURL = raw
	saveConfig(cfg)

	fmt.Printf("Default server set to %q.\n", raw)
}

func themesCmd() {
	for _, name := range styles.ListThemes() {
		fmt.Println(name)
	}
}

// loadOrDefaultConfig loads the config from disk, falling back to defaults.
func loadOrDefaultConfig() *config.Config {
	path, err := config.GetConfigPath()
	if err != nil {
		return config.DefaultConfig()
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return config.DefaultConfig()
	}
	return cfg
}

// saveConfig writes the config to disk, creating directories as needed.
func saveConfig(cfg *config.Config) {
	if err := config.EnsureDirs(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directories: %v\n", err)
		os.Exit(1)
	}

	path, err := config.GetConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := config.SaveConfig(cfg, path); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}
}
