package main

import (
	"fmt"
	"os"

	"github.com/lathbar/lath/internal/cli"
)

func main() {
	rootCmd := cli.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "lath: %v\n", err)
		os.Exit(1)
	}
}
