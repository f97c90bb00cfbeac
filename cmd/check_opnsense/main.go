package main

import (
	"context"
	"os"

	"github.com/nitmir/check-opnsense/pkg/runtime/terminal"
	"github.com/nitmir/check-opnsense/pkg/services/check"
)

func main() {
	cli := terminal.NewCLI(terminal.Options{
		Registry:  check.NewDefaultRegistry(),
		Output:    os.Stdout,
		ErrOutput: os.Stderr,
	})

	os.Exit(cli.Execute(context.Background(), os.Args[1:]))
}
