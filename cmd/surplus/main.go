package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/roach88/surplus/internal/cli"
)

func main() {
	// A .env file may pin SURPLUS_DRIVER / SURPLUS_DB per checkout.
	// Missing files are fine; flags always win over the environment.
	_ = godotenv.Load()

	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
