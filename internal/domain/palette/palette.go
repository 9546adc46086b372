// Package palette maps language usage statistics to a stable, weighted
// color palette.
package palette

import (
	"fmt"
	"sort"

	"github.com/cespare/xxhash/v2"
)

// DefaultHex is the accent color used when no language data is available.
const DefaultHex = "#58a6ff"

// Entry is one weighted palette color. Weights across a built palette sum
// to 1.0.
type Entry struct {
	Name   string
	Hex    string
	Weight float64
}

// languageColors pins well-known languages to their conventional colors so
// a palette never depends on what the GitHub API happens to return.
var languageColors = map[string]string{
	"Go":         "#00add8",
	"Rust":       "#dea584",
	"Python":     "#3572a5",
	"JavaScript": "#f1e05a",
	"TypeScript": "#3178c6",
	"Java":       "#b07219",
	"C":          "#555555",
	"C++":        "#f34b7d",
	"C#":         "#178600",
	"Ruby":       "#701516",
	"Shell":      "#89e051",
	"HTML":       "#e34c26",
	"CSS":        "#563d7c",
	"Kotlin":     "#a97bff",
	"Swift":      "#f05138",
	"PHP":        "#4f5d95",
	"Haskell":    "#5e5086",
	"Elixir":     "#6e4a7e",
	"Lua":        "#000080",
	"Zig":        "#ec915c",
	"Dart":       "#00b4ab",
	"Scala":      "#c22d40",
	"R":          "#198ce7",
	"OCaml":      "#ef7a08",
}

// ColorFor resolves a language name to a hex color. Known languages use the
// pinned table; unknown ones get a deterministic hash-derived color so the
// mapping is stable across runs. A non-empty hint (e.g. the color GitHub
// reports) wins over the fallback but not over the pinned table.
func ColorFor(name, hint string) string {
	if hex, ok := languageColors[name]; ok {
		return hex
	}
	if hint != "" {
		return hint
	}
	return hashColor(name)
}

// hashColor derives a stable, reasonably bright color from a language name.
func hashColor(name string) string {
	h := xxhash.Sum64String(name)
	// Keep each channel in [64, 223] so fallback colors stay visible on a
	// dark background.
	r := 64 + byte(h)%160
	g := 64 + byte(h>>8)%160
	b := 64 + byte(h>>16)%160
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Build produces the weight-sorted palette for the given languages,
// truncated to at most n entries and renormalized so weights sum to 1.0.
// Languages with zero or negative weight are ignored. An empty input yields
// the single default color at full weight.
func Build(langs []Entry, n int) []Entry {
	if n <= 0 {
		n = 1
	}

	entries := make([]Entry, 0, len(langs))
	for _, l := range langs {
		if l.Weight <= 0 {
			continue
		}
		entries = append(entries, Entry{
			Name:   l.Name,
			Hex:    ColorFor(l.Name, l.Hex),
			Weight: l.Weight,
		})
	}
	if len(entries) == 0 {
		return []Entry{{Name: "default", Hex: DefaultHex, Weight: 1.0}}
	}

	// Weight descending, name ascending on ties, so the order never
	// depends on input ordering.
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Weight != entries[j].Weight {
			return entries[i].Weight > entries[j].Weight
		}
		return entries[i].Name < entries[j].Name
	})

	if len(entries) > n {
		entries = entries[:n]
	}

	var total float64
	for _, e := range entries {
		total += e.Weight
	}
	for i := range entries {
		entries[i].Weight /= total
	}
	return entries
}
