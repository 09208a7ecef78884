package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/focusbuddy/focusd/pkg/blocklist"
)

// blocklistCommand handles blocked-domain subcommands.
type blocklistCommand struct {
	configPath string
}

// Execute runs the blocklist command.
func (c *blocklistCommand) Execute(args []string) error {
	if len(args) == 0 {
		return c.showHelp()
	}

	subcommand := args[0]
	subargs := args[1:]

	switch subcommand {
	case "add":
		return c.runAdd(subargs)
	case "list":
		return c.runList(subargs)
	case "delete":
		return c.runDelete(subargs)
	case "help":
		return c.showHelp()
	default:
		return fmt.Errorf("unknown blocklist subcommand: %s", subcommand)
	}
}

// runAdd blocks a domain.
func (c *blocklistCommand) runAdd(args []string) error {
	fs := flag.NewFlagSet("blocklist add", flag.ExitOnError)
	user := fs.String("user", "", "user id (required)")
	listName := fs.String("list", "permanent", "list type (work, study, personal, other, permanent)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || fs.NArg() != 1 {
		return fmt.Errorf("usage: focusd blocklist add -user <id> [-list <type>] <domain>")
	}

	listType, err := blocklist.ParseListType(*listName)
	if err != nil {
		return fmt.Errorf("invalid list type %q", *listName)
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	entry, err := a.blocklist.Add(*user, fs.Arg(0), listType)
	switch {
	case errors.Is(err, blocklist.ErrInvalidDomain):
		return fmt.Errorf("%q is not a valid domain", fs.Arg(0))
	case errors.Is(err, blocklist.ErrDuplicateDomain):
		return fmt.Errorf("%q is already blocked", fs.Arg(0))
	case err != nil:
		return err
	}

	fmt.Printf("Blocked %s on the %s list (%s)\n", entry.Domain, entry.ListType, entry.ID)
	return nil
}

// runList lists blocked domains.
func (c *blocklistCommand) runList(args []string) error {
	fs := flag.NewFlagSet("blocklist list", flag.ExitOnError)
	user := fs.String("user", "", "user id (required)")
	listName := fs.String("list", "", "filter by list type")
	format := fs.String("format", "", "output format (table, json, simple)")
	compact := fs.Bool("compact", false, "compact output")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" {
		return fmt.Errorf("usage: focusd blocklist list -user <id> [-list <type>]")
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	var entries []*blocklist.Entry
	if *listName != "" {
		listType, err := blocklist.ParseListType(*listName)
		if err != nil {
			return fmt.Errorf("invalid list type %q", *listName)
		}
		entries, err = a.blocklist.ListByType(*user, listType)
		if err != nil {
			return err
		}
	} else {
		entries, err = a.blocklist.List(*user)
		if err != nil {
			return err
		}
	}

	return a.formatter(*format, *compact).FormatBlocklist(os.Stdout, entries)
}

// runDelete unblocks a domain by entry id.
func (c *blocklistCommand) runDelete(args []string) error {
	fs := flag.NewFlagSet("blocklist delete", flag.ExitOnError)
	user := fs.String("user", "", "user id (required)")
	id := fs.String("id", "", "entry id (required)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *user == "" || *id == "" {
		return fmt.Errorf("usage: focusd blocklist delete -user <id> -id <entry>")
	}

	a, err := newApp(c.configPath)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()

	if err := a.blocklist.Delete(*id, *user); err != nil {
		if errors.Is(err, blocklist.ErrEntryNotFound) {
			return fmt.Errorf("entry %s not found", *id)
		}
		return err
	}

	fmt.Printf("Unblocked entry %s\n", *id)
	return nil
}

// showHelp displays blocklist command help.
func (c *blocklistCommand) showHelp() error {
	help := `Blocked domain management

Usage:
  focusd blocklist <subcommand> [flags]

Subcommands:
  add         Block a domain
  list        List blocked domains
  delete      Unblock a domain by entry id

Flags:
  -user       User id (required)
  -list       List type: work, study, personal, other, permanent
  -format     Output format (table, json, simple)

Examples:
  focusd blocklist add -user alice -list work reddit.com
  focusd blocklist list -user alice
  focusd blocklist delete -user alice -id <entry>
`
	fmt.Print(help)
	return nil
}
