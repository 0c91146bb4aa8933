package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the ASCII art banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{`  ______ _                                             `, "#38bdf8"},
		{` |  ____| |                            (_) | |         `, "#22d3ee"},
		{` | |__  | | _____      _____ _ __ ___   _| |_| |__      `, "#2dd4bf"},
		{` |  __| | |/ _ \ \ /\ / / __| '_ ` + "`" + ` _ \ | | __| '_ \  `, "#34d399"},
		{` | |    | | (_) \ V  V /\__ \ | | | | || | |_| | | |    `, "#4ade80"},
		{` |_|    |_|\___/ \_/\_/ |___/_| |_| |_||_|\__|_| |_|    `, "#a3e635"},
	}

	fmt.Println()
	for _, line := range lines {
		fmt.Println(termenv.String(line.text).Foreground(p.Color(line.color)))
	}
	fmt.Println()
}
