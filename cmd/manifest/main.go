package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/deepclear/manifest/internal/app"
)

const usage = `manifest - DeepClear operations console

Usage:
  manifest [flags]                open the console
  manifest login [flags]          log in and store the session
  manifest logout [flags]         clear the stored session
  manifest create-admin [flags]   provision an admin account
  manifest create-client [flags]  provision a client account

Flags:
  -config string    override config path (default ~/.config/manifest/config.toml)
  -session string   override session path (default from config)
`

func main() {
	os.Exit(run())
}

// splitCommand peels a leading subcommand off the argument list. Flags and
// empty arguments are not commands.
func splitCommand(args []string) (string, []string) {
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		return args[0], args[1:]
	}
	return "", args
}

func run() int {
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }

	command, args := splitCommand(os.Args[1:])

	flags := flag.NewFlagSet("manifest", flag.ExitOnError)
	flags.Usage = flag.Usage
	configPath := flags.String("config", "", "override config path (optional)")
	sessionPath := flags.String("session", "", "override session path (optional)")
	_ = flags.Parse(args)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{ConfigPath: *configPath, SessionPath: *sessionPath}

	var err error
	switch command {
	case "":
		err = app.Run(ctx, opts)
	case "login":
		err = app.Login(ctx, opts)
	case "logout":
		err = app.Logout(opts)
	case "create-admin":
		err = app.CreateAdminUser(ctx, opts)
	case "create-client":
		err = app.CreateClientUser(ctx, opts)
	case "help":
		flag.Usage()
	default:
		fmt.Fprintf(os.Stderr, "manifest: unknown command %q\n\n", command)
		flag.Usage()
		return 2
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "manifest: %v\n", err)
		return 1
	}
	return 0
}
