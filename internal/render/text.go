package render

import "strings"

// WrapText breaks text into lines no wider than maxWidth using a greedy
// fill: words are appended to the current line until the next one would
// overflow, then the line is flushed. A word wider than maxWidth on its own
// still gets a line. Empty text yields a single empty line.
func WrapText(text string, maxWidth float64, measure MeasureFunc) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	line := words[0]
	for _, word := range words[1:] {
		candidate := line + " " + word
		if measure(candidate) > maxWidth {
			lines = append(lines, line)
			line = word
			continue
		}
		line = candidate
	}
	return append(lines, line)
}
