package main

import (
	"os"

	"github.com/tessellate-ai/samplerev/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
