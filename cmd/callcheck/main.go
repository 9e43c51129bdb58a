// Command callcheck analyzes contact-center conversation transcripts.
package main

import (
	"context"
	"os"

	"github.com/roach88/callcheck/internal/cli"
)

func main() {
	os.Exit(cli.Execute(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
