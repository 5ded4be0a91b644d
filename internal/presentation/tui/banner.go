package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintBanner writes the kwargs ASCII banner followed by the version.
func PrintBanner(w io.Writer, version string) {
	p := termenv.ColorProfile()
	lines := []struct {
		text  string
		color string
	}{
		{" _                                 ", "#818cf8"},
		{"| | ____      ____ _ _ __ __ _ ___ ", "#a78bfa"},
		{"| |/ /\\ \\ /\\ / / _` | '__/ _` / __|", "#c084fc"},
		{"|   <  \\ V  V / (_| | | | (_| \\__ \\", "#e879f9"},
		{"|_|\\_\\  \\_/\\_/ \\__,_|_|  \\__, |___/", "#f472b6"},
		{"                         |___/     ", "#fb7185"},
	}

	fmt.Fprintln(w)
	for _, l := range lines {
		fmt.Fprintln(w, termenv.String(l.text).Foreground(p.Color(l.color)))
	}
	fmt.Fprintln(w, termenv.String("  v"+version).Faint())
	fmt.Fprintln(w)
}
