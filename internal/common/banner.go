package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/ternarybob/banner"
)

// PrintBanner displays the application startup banner to stderr.
func PrintBanner(config *Config, logger *Logger) {
	version := GetVersion()
	serviceURL := fmt.Sprintf("http://%s:%d", config.Server.Host, config.Server.Port)

	lineColor := banner.ColorCyan
	textColor := banner.ColorBold + banner.ColorWhite
	width := 70
	hr := lineColor + strings.Repeat("═", width) + banner.ColorReset

	art := []string{
		` 888b     d888  .d88888b.  888b    888 8888888888 88888888888     d8888`,
		` 8888b   d8888 d88P" "Y88b 8888b   888 888            888        d88888`,
		` 88888b.d88888 888     888 88888b  888 888            888       d88P888`,
		` 888Y88888P888 888     888 888Y88b 888 8888888        888      d88P 888`,
		` 888 Y888P 888 888     888 888 Y88b888 888            888     d88P  888`,
		` 888  Y8P  888 888     888 888  Y88888 888            888    d88P   888`,
		` 888   "   888 Y88b. .d88P 888   Y8888 888            888   d8888888888`,
		` 888       888  "Y88888P"  888    Y888 8888888888     888  d88P     888`,
	}

	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")
	for _, line := range art {
		fmt.Fprintf(os.Stderr, "%s%s%s\n", textColor, line, banner.ColorReset)
	}
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "  %sversion%s     %s\n", banner.ColorCyan, banner.ColorReset, version)
	fmt.Fprintf(os.Stderr, "  %senvironment%s %s\n", banner.ColorCyan, banner.ColorReset, config.Environment)
	fmt.Fprintf(os.Stderr, "  %sservice%s     %s\n", banner.ColorCyan, banner.ColorReset, serviceURL)
	fmt.Fprintf(os.Stderr, "  %sledger%s      %s\n", banner.ColorCyan, banner.ColorReset, config.Storage.Ledger.Path)
	fmt.Fprintf(os.Stderr, "\n")
	fmt.Fprintf(os.Stderr, "%s\n", hr)
	fmt.Fprintf(os.Stderr, "\n")
}
