package main

import (
	"context"
	"io"
	"os"

	_ "github.com/joho/godotenv/autoload"

	"github.com/meza/coverage-gate/cmd/covgate"
)

var exit = os.Exit

func main() {
	exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer) int {
	return covgate.Execute(ctx, args, stdin, stdout, stderr)
}
