package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - signin:   Sign in with email and password
// - signup:   Create an account
// - signout:  End the current session
// - guest:    Continue as a guest
// - whoami:   Show the current identity and role
// - access:   Decide whether the current identity may open a route
// - nearby:   List stores around the current location
// - products: List products or show one
// - prices:   Show the current metal prices

func main() {
	if len(os.Args) < 2 {
		printUsage(os.Stderr)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Args[1], os.Args[2:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, name string, args []string, out io.Writer) error {
	cmd, ok := commands()[name]
	if !ok {
		printUsage(os.Stderr)

		return errors.Errorf("unknown subcommand %q", name)
	}

	if err := cmd.parse(args); err != nil {
		return errors.Wrapf(err, "failed to parse %s flags", name)
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	return cmd.run(ctx, a, out)
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: gahanactl <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  signin   -email -password")
	fmt.Fprintln(w, "  signup   -email -password -role [-first -last -phone]")
	fmt.Fprintln(w, "  signout")
	fmt.Fprintln(w, "  guest")
	fmt.Fprintln(w, "  whoami")
	fmt.Fprintln(w, "  access   -path [-role] [-guest]")
	fmt.Fprintln(w, "  nearby   [-radius km] [-refresh] [-at lat,lng] [-limit n]")
	fmt.Fprintln(w, "  products [-id id] [-store id] [-category c] [-q text] [-purity 24K,22K] [-limit n]")
	fmt.Fprintln(w, "  prices")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Configuration is read from config/config.yaml and CLIENT_* environment variables.")
}
