package main

import (
	"os"

	"github.com/assistkit/sanibundle/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
