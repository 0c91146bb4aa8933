package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/flowsmith/flowsmith/pkg/pattern"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "List the structural patterns the generator can build",
	Run: func(cmd *cobra.Command, args []string) {
		for _, a := range pattern.All() {
			fmt.Printf("%s — %s\n", a.ID, a.Label)
			fmt.Printf("  advantages:  %s\n", strings.Join(a.Advantages, "; "))
			fmt.Printf("  limitations: %s\n", strings.Join(a.Limitations, "; "))
		}
	},
}

func init() {
	rootCmd.AddCommand(patternsCmd)
}
