package main

import (
	"fmt"
	"os"

	"offr-io/go_backend/internal/cli"
)

func main() {
	if err := cli.NewRootCmd(cli.DefaultApp()).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
