package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/focusbuddy/focusd/pkg/config"
)

// configCommand handles configuration management subcommands.
type configCommand struct {
	configPath string
}

// Execute runs the config command with given arguments.
func (c *configCommand) Execute(args []string) error {
	if len(args) == 0 {
		return c.showHelp()
	}

	subcommand := args[0]
	subargs := args[1:]

	switch subcommand {
	case "show":
		return c.runShow(subargs)
	case "path":
		return c.runPath()
	case "reset":
		return c.runReset(subargs)
	case "help":
		return c.showHelp()
	default:
		return fmt.Errorf("unknown config subcommand: %s", subcommand)
	}
}

// runShow displays the current configuration.
func (c *configCommand) runShow(args []string) error {
	fs := flag.NewFlagSet("config show", flag.ExitOnError)
	format := fs.String("format", "yaml", "output format (yaml, json)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.NewLoader(c.configPath).Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	switch *format {
	case "json":
		return c.showJSON(cfg)
	default:
		return c.showYAML(cfg)
	}
}

// showYAML displays configuration in YAML format.
func (c *configCommand) showYAML(cfg *config.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Println("# Current Configuration")
	fmt.Println()
	fmt.Print(string(data))
	return nil
}

// showJSON displays configuration in JSON format.
func (c *configCommand) showJSON(cfg *config.Config) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	fmt.Println(string(data))
	return nil
}

// runPath shows the configuration file search paths.
func (c *configCommand) runPath() error {
	paths := []string{
		"./config.yaml",
		config.DefaultConfigPath(),
	}
	if envPath := os.Getenv("FOCUSD_CONFIG"); envPath != "" {
		paths = append([]string{envPath}, paths...)
	}

	fmt.Println("Configuration file search paths (in order of precedence):")
	fmt.Println()

	for i, p := range paths {
		exists := "not found"
		if _, err := os.Stat(p); err == nil {
			exists = "found"
		}
		fmt.Printf("  %d. %s [%s]\n", i+1, p, exists)
	}

	return nil
}

// runReset writes the default configuration to disk.
func (c *configCommand) runReset(args []string) error {
	fs := flag.NewFlagSet("config reset", flag.ExitOnError)
	force := fs.Bool("force", false, "skip confirmation prompt")
	output := fs.String("output", "", "output path (default: ~/.config/focusd/config.yaml)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	path := *output
	if path == "" {
		path = config.DefaultConfigPath()
	}

	if !*force {
		if _, err := os.Stat(path); err == nil {
			fmt.Printf("Overwrite %s with defaults? [y/N] ", path)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			if strings.ToLower(strings.TrimSpace(answer)) != "y" {
				fmt.Println("Aborted")
				return nil
			}
		}
	}

	if err := config.Save(config.Default(), path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	fmt.Printf("Wrote default configuration to %s\n", path)
	return nil
}

// showHelp displays config command help.
func (c *configCommand) showHelp() error {
	help := `Configuration management

Usage:
  focusd config <subcommand> [flags]

Subcommands:
  show        Display the active configuration
  path        Show configuration file search paths
  reset       Write the default configuration to disk

Show Flags:
  -format     Output format (yaml, json)

Reset Flags:
  -force      Skip confirmation prompt
  -output     Output path (default: ~/.config/focusd/config.yaml)
`
	fmt.Print(help)
	return nil
}
