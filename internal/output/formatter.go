// Package output renders decoded packets for oscctl.
package output

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	Format(v PacketView) (string, error)
}

// NewFormatter returns a Formatter for the given format string.
// Supported formats: "text" (default), "json", "yaml".
func NewFormatter(format string) Formatter {
	switch strings.ToLower(format) {
	case "json":
		return &JSONFormatter{}
	case "yaml":
		return &YAMLFormatter{}
	default:
		return &TextFormatter{}
	}
}

var (
	bundleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("57"))
	addressStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	tagStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	sourceStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Italic(true)
)

// TextFormatter renders one line per message, indenting bundle contents.
type TextFormatter struct{}

func (f *TextFormatter) Format(v PacketView) (string, error) {
	var b strings.Builder
	if v.Source != "" {
		b.WriteString(sourceStyle.Render("from " + v.Source))
		b.WriteByte('\n')
	}
	writeText(&b, v, 0)
	return b.String(), nil
}

func writeText(b *strings.Builder, v PacketView, depth int) {
	b.WriteString(strings.Repeat("  ", depth))
	switch v.Kind {
	case "bundle":
		head := "#bundle " + v.Timetag
		if v.Immediate {
			head += " (immediate)"
		}
		b.WriteString(bundleStyle.Render(head))
		b.WriteByte('\n')
		for _, elem := range v.Elements {
			writeText(b, elem, depth+1)
		}
	case "message":
		b.WriteString(addressStyle.Render(v.Address))
		b.WriteByte(' ')
		b.WriteString(tagStyle.Render(v.TypeTags))
		for _, arg := range v.Arguments {
			b.WriteByte(' ')
			b.WriteString(textValue(arg))
		}
		b.WriteByte('\n')
	default:
		b.WriteString(v.Kind)
		b.WriteByte('\n')
	}
}

func textValue(arg ArgumentView) string {
	switch arg.Type {
	case "s":
		return strconv.Quote(fmt.Sprint(arg.Value))
	case "b":
		return "0x" + fmt.Sprint(arg.Value)
	default:
		return fmt.Sprint(arg.Value)
	}
}

// JSONFormatter formats data as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(v PacketView) (string, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("format JSON: %w", err)
	}
	return string(b) + "\n", nil
}

// YAMLFormatter formats data as YAML.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(v PacketView) (string, error) {
	b, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("format YAML: %w", err)
	}
	return string(b), nil
}
