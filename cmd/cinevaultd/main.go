// Command cinevaultd serves the CineVault-Lite dashboard API.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/NoNoBzH22/CineVault-Lite/internal/config"
)

var version = "dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run parses flags and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("cinevaultd", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "config file (default: $"+config.EnvConfig+", then the standard locations)")
	check := fs.Bool("check", false, "validate the config and exit")
	showVersion := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if *showVersion {
		fmt.Fprintf(stdout, "cinevaultd %s\n", version)
		return 0
	}

	var err error
	if *check {
		err = checkConfig(*configPath, stdout)
	} else {
		err = runServer(*configPath)
	}
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

// checkConfig loads and validates the config, printing warnings.
func checkConfig(path string, out io.Writer) error {
	path, err := resolveConfigPath(path)
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	for _, w := range cfg.Warnings() {
		fmt.Fprintf(out, "warning: %s\n", w)
	}
	fmt.Fprintf(out, "%s: ok\n", path)
	return nil
}

func resolveConfigPath(path string) (string, error) {
	if path != "" {
		return path, nil
	}
	return config.Discover()
}
