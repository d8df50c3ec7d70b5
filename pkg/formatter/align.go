package formatter

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// alignAliases pads runs of consecutive lines that each contain an AS
// keyword so the keywords start in the same display column.
func alignAliases(s string) string {
	lines := strings.Split(s, "\n")
	offsets := make([]int, len(lines))
	widths := make([]int, len(lines))
	for i, line := range lines {
		offsets[i] = aliasOffset(line)
		if offsets[i] >= 0 {
			widths[i] = runewidth.StringWidth(line[:offsets[i]])
		}
	}

	for start := 0; start < len(lines); {
		if offsets[start] < 0 {
			start++
			continue
		}
		end, column := start, 0
		for end < len(lines) && offsets[end] >= 0 {
			column = max(column, widths[end])
			end++
		}
		if end-start > 1 {
			for i := start; i < end; i++ {
				if pad := column - widths[i]; pad > 0 {
					lines[i] = lines[i][:offsets[i]] + strings.Repeat(" ", pad) + lines[i][offsets[i]:]
				}
			}
		}
		start = end
	}
	return strings.Join(lines, "\n")
}

// aliasOffset returns the byte offset of the space before the first AS
// keyword outside quotes, or -1.
func aliasOffset(line string) int {
	var quote byte
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '\'' || c == '"' || c == '`':
			quote = c
		case c == '-' && strings.HasPrefix(line[i:], "--"):
			return -1
		case c == ' ' && i > 0 && isAliasAt(line, i+1):
			return i
		}
	}
	return -1
}

func isAliasAt(line string, i int) bool {
	if i+3 > len(line) || !strings.EqualFold(line[i:i+2], "AS") {
		return false
	}
	return line[i+2] == ' '
}
