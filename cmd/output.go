package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var outputFormat = formatText

// render writes v in the selected format. Text output is delegated to text.
func render(out io.Writer, v any, text func(io.Writer) error) error {
	switch outputFormat {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(v), "output: encode json")
	case formatYAML:
		// Round-trip through JSON so YAML keys match the JSON field names.
		raw, err := json.Marshal(v)
		if err != nil {
			return eris.Wrap(err, "output: encode json")
		}
		var generic any
		if err := json.Unmarshal(raw, &generic); err != nil {
			return eris.Wrap(err, "output: decode json")
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return eris.Wrap(err, "output: encode yaml")
		}
		return eris.Wrap(enc.Close(), "output: flush yaml")
	case formatText, "":
		return text(out)
	default:
		return eris.Errorf("output: unknown format %q", outputFormat)
	}
}

var titleCaser = cases.Title(language.English)

// typeLabel turns a place type like "gas_station" into "Gas Station".
func typeLabel(t string) string {
	return titleCaser.String(strings.ReplaceAll(t, "_", " "))
}

func typeLabels(types []string, limit int) string {
	if len(types) > limit {
		types = types[:limit]
	}
	labels := make([]string, len(types))
	for i, t := range types {
		labels[i] = typeLabel(t)
	}
	return strings.Join(labels, ", ")
}

func truncate(s string, n int) string {
	if len(s) > n {
		return s[:n-3] + "..."
	}
	return s
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', 4, 64)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func fprintAdvisory(w io.Writer, msg string) {
	if msg != "" {
		_, _ = fmt.Fprintf(w, "note: %s\n", msg)
	}
}
