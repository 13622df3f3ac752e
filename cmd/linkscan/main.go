// Package main provides linkscan, a CLI that reports how every link on an
// HTML page would be tracked.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "linkscan",
	Short: "Offline link tracking classifier",
	Long:  "linkscan classifies the anchors of a saved HTML page and prints the record each click would emit.",
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
