package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/driver"
	"github.com/csun-comp430-s22/JamaScript-sub000/pkg/logger"
)

func runTokens(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "jama tokens expects exactly one file (received %s)\n", strings.Join(args, " "))
		return exitUsage
	}
	if err := logger.Init(logger.DefaultConfig()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitUsage
	}
	defer logger.Close()

	sources, err := driver.ReadSources(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRejected
	}
	toks, err := driver.Tokenize(sources[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return exitRejected
	}
	logger.Debug("Tokenized", "file", sources[0].Path, "tokens", len(toks))
	for _, tok := range toks {
		fmt.Fprintf(os.Stdout, "%d:%d\t%s\n", tok.Location.Line, tok.Location.Column, tok.Token)
	}
	return exitAccepted
}
