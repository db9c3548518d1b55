package main

import (
	"errors"
	"fmt"
	"os"
)

const cliToolVersion = "jama 0.1.0-dev"

var errManifestNotFound = errors.New("jama.yml not found")

const (
	exitAccepted = 0
	exitRejected = 1
	exitUsage    = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return exitUsage
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage()
		return exitAccepted
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return exitAccepted
	case "check":
		return runCheck(args[1:])
	case "tokens":
		return runTokens(args[1:])
	case "repl":
		return runRepl(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage()
		return exitUsage
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  jama check [-manifest jama.yml] [-repo dir -rev revision] [-parallel] [-workers n]")
	fmt.Fprintln(os.Stderr, "             [-log-level debug|info|warn|error] [-log-format text|json] [-log-file path] [file.jama ...]")
	fmt.Fprintln(os.Stderr, "  jama tokens <file.jama>")
	fmt.Fprintln(os.Stderr, "  jama repl")
	fmt.Fprintln(os.Stderr, "  jama version")
}
