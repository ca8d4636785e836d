// Package renderer holds what every rendering backend shares: the loop
// contract, message markup and the top-down projection of a scene.
package renderer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gookit/color"
)

// TextStyle is the style of a run of message text.
type TextStyle int

const (
	StyleNormal TextStyle = iota
	StyleItem
	StyleActionShort
	StyleAction
	StyleDenied
	StyleSubtle
	StyleTitle
)

// Span is a run of text in one style.
type Span struct {
	Text  string
	Style TextStyle
}

var (
	ColorItem        = color.Style{color.FgGreen, color.OpBold}
	ColorAction      = color.Style{color.FgMagenta}
	ColorActionShort = color.Style{color.FgMagenta, color.OpBold}
	ColorDenied      = color.Style{color.FgRed, color.OpBold}
	ColorSubtle      = color.Style{color.FgGray}
	ColorTitle       = color.Style{color.FgCyan, color.OpBold}

	regexpStringFunctions = regexp.MustCompile(`([a-zA-Z_]*){([a-z A-Z0-9_,:./\-]+)}`)
)

// ApplyMarkup formats msg with a and splits it into styled spans. Markup is
// FUNC{operand}: ITEM, ACTION (first letter emphasised), DENIED, SUBTLE and
// TITLE. An unknown function is kept as plain text.
func ApplyMarkup(msg string, a ...any) []Span {
	if len(a) > 0 {
		msg = fmt.Sprintf(msg, a...)
	}

	var spans []Span
	add := func(s string, style TextStyle) {
		if s != "" {
			spans = append(spans, Span{Text: s, Style: style})
		}
	}

	last := 0
	for _, m := range regexpStringFunctions.FindAllStringSubmatchIndex(msg, -1) {
		add(msg[last:m[0]], StyleNormal)
		last = m[1]

		function := msg[m[2]:m[3]]
		operand := msg[m[4]:m[5]]
		switch function {
		case "ITEM":
			add(operand, StyleItem)
		case "ACTION":
			add(operand[:1], StyleActionShort)
			add(operand[1:], StyleAction)
		case "DENIED":
			add(operand, StyleDenied)
		case "SUBTLE":
			add(operand, StyleSubtle)
		case "TITLE":
			add(operand, StyleTitle)
		default:
			add(msg[m[0]:m[1]], StyleNormal)
		}
	}
	add(msg[last:], StyleNormal)
	return spans
}

// Plain strips markup from msg.
func Plain(msg string, a ...any) string {
	var sb strings.Builder
	for _, s := range ApplyMarkup(msg, a...) {
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// consoleStyle maps a span style to its console color.
func consoleStyle(style TextStyle) (color.Style, bool) {
	switch style {
	case StyleItem:
		return ColorItem, true
	case StyleAction:
		return ColorAction, true
	case StyleActionShort:
		return ColorActionShort, true
	case StyleDenied:
		return ColorDenied, true
	case StyleSubtle:
		return ColorSubtle, true
	case StyleTitle:
		return ColorTitle, true
	}
	return nil, false
}

// FormatString formats msg for a color console.
func FormatString(msg string, a ...any) string {
	var sb strings.Builder
	for _, s := range ApplyMarkup(msg, a...) {
		if st, ok := consoleStyle(s.Style); ok {
			sb.WriteString(st.Sprint(s.Text))
			continue
		}
		sb.WriteString(s.Text)
	}
	return sb.String()
}

// PrintString prints a formatted string
func PrintString(msg string, a ...any) {
	fmt.Print(FormatString(msg, a...))
}

// Wrap breaks s into lines no wider than width runes. Explicit newlines are
// kept and a word longer than width is split.
func Wrap(s string, width int) []string {
	if width < 1 {
		width = 1
	}
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		line := []rune{}
		for _, word := range strings.Fields(para) {
			w := []rune(word)
			for len(w) > width {
				if len(line) > 0 {
					lines = append(lines, string(line))
					line = line[:0]
				}
				lines = append(lines, string(w[:width]))
				w = w[width:]
			}
			switch {
			case len(line) == 0:
				line = append(line, w...)
			case len(line)+1+len(w) <= width:
				line = append(append(line, ' '), w...)
			default:
				lines = append(lines, string(line))
				line = append(line[:0], w...)
			}
		}
		lines = append(lines, string(line))
	}
	return lines
}
