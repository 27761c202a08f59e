package main

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	funcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	typeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	denormalStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFB86C"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// printer writes results, styled only when the destination is a terminal.
type printer struct {
	w      io.Writer
	styled bool
}

func newPrinter(f *os.File) printer {
	return printer{w: f, styled: term.IsTerminal(int(f.Fd()))}
}

func (p printer) render(s lipgloss.Style, text string) string {
	if !p.styled {
		return text
	}
	return s.Render(text)
}

func (p printer) header(title, detail string) {
	fmt.Fprintf(p.w, "%s %s\n", p.render(titleStyle, title), detail)
}

func (p printer) entry(e entryInfo) {
	fmt.Fprintf(p.w, "  %s\n", p.render(funcStyle, e.signature()))
}

func (p printer) result(name string, values []float64, detections int64) {
	for _, v := range values {
		fmt.Fprintf(p.w, "%s = %s\n", p.render(funcStyle, name), p.render(resultStyle, formatFloat(v)))
	}
	style := resultStyle
	if detections > 0 {
		style = denormalStyle
	}
	fmt.Fprintf(p.w, "denormals: %s\n", p.render(style, strconv.FormatInt(detections, 10)))
}

// formatFloat prints the shortest decimal and the exact hexadecimal form.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64) + " (" + strconv.FormatFloat(v, 'x', -1, 64) + ")"
}
