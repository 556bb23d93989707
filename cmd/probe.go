package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"vigia/internal/api"
)

func probeCmd(args []string) {
	fs := flag.NewFlagSet("probe", flag.ExitOnError)
	serverURL := fs.String("server", "", "Backend URL (overrides config)")
	timeout := fs.Duration("timeout", 5*time.Second, "Request timeout")
	withObjects := fs.Bool("objects", false, "Also list detected objects")

	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: vigia probe [--server URL] [--timeout D] [--objects]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}

	cfg := loadOrDefaultConfig()
	if *serverURL != "" {
		cfg.ServerURL = *serverURL
	}

	client := api.NewClient(cfg.ServerURL)
	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	health, err := client.Health(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	state := "stopped"
	if health.DetectionRunning {
		state = "running"
		if health.RunID != "" {
			state = fmt.Sprintf("running (run %s)", health.RunID)
		}
	}

	fmt.Printf("Backend:    %s\n", cfg.ServerURL)
	fmt.Printf("Status:     %s\n", health.Status)
	fmt.Printf("Detection:  %s\n", state)
	fmt.Printf("Classes:    %d (%s)\n", health.ClassesLoaded, strings.Join(health.AvailableClasses, ", "))
	fmt.Printf("Total:      %s vehicles\n", humanize.Comma(health.TotalDetected))
	fmt.Printf("Active:     %d objects (%d tracked)\n", health.ActiveObjects, health.TrackedObjects)

	if *withObjects {
		objs, err := client.Objects(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error fetching objects: %v\n", err)
			os.Exit(1)
		}
		fmt.Println()
		if len(objs.Objects) == 0 {
			fmt.Println("No objects detected.")
		} else {
			fmt.Printf("%-6s  %-12s  %10s  %-10s  %-8s  %7s  %s\n",
				"ID", "Type", "Confidence", "Detected", "Status", "Updates", "Duration")
			fmt.Printf("%-6s  %-12s  %10s  %-10s  %-8s  %7s  %s\n",
				"----", "----", "----------", "--------", "------", "-------", "--------")
			for _, o := range objs.Objects {
				fmt.Printf("%-6d  %-12s  %9.1f%%  %-10s  %-8s  %7d  %s\n",
					o.ID, o.Type, o.Confidence, o.DetectedAt, o.Status, o.Updates, o.Duration)
			}
		}
	}

	// Scripting contract: nonzero exit when the backend is not healthy.
	if !health.Healthy() {
		os.Exit(1)
	}
}
