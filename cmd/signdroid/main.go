// Package main provides the signdroid CLI for signing Android release artifacts.
package main

import (
	"context"
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	command := os.Args[1]

	// Dispatch to subcommand
	switch command {
	case "sign":
		runSign(ctx, os.Args[2:])
	case "doctor":
		runDoctor(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`signdroid - Android release artifact signing for CI

Usage:
  signdroid <command> [options]

Commands:
  sign     Align, sign and verify all .apk/.aab artifacts in a directory
  doctor   Resolve and print the external tool paths for this environment
  verify   Run signature verification on already-signed APKs

Use "signdroid <command> --help" for more information about a command.`)
}
