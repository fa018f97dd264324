package main

import (
	"fmt"
	"os"

	"github.com/itunescache/itunescache/internal/cli"
)

// Version information set by build flags
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	cmd := cli.NewRootCmd(Version, BuildTime)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
