package main

import (
	"os"

	"github.com/mshelton/loupe/internal/cli"
)

func main() {
	os.Exit(cli.Run())
}
