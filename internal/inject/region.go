package inject

import "strings"

// Markers delimit an injection region. The text strictly between Start and
// End is owned by the engine and rewritten on every run.
type Markers struct {
	Start string `json:"start" yaml:"start"`
	End   string `json:"end" yaml:"end"`
}

// Marker pairs recognised in theme entry files.
var (
	CSSMarkers = Markers{Start: "/* inject:imports */", End: "/* endinject */"}
	JSMarkers  = Markers{Start: "<!-- inject:js -->", End: "<!-- endinject -->"}
)

// ReplaceRegions rewrites every Start…End region of content so it holds
// lines, one per line, indented like the line carrying the start marker.
// Lines end in "\r\n" when content already uses it.
// It reports whether at least one complete region was found; when none is,
// content is returned unchanged. Applying it again with the same lines
// yields the same text.
func ReplaceRegions(content string, m Markers, lines []string) (string, bool) {
	if m.Start == "" || m.End == "" {
		return content, false
	}

	nl := newline(content)

	var b strings.Builder
	found := false
	pos := 0

	for {
		start := strings.Index(content[pos:], m.Start)
		if start < 0 {
			break
		}
		start += pos
		bodyStart := start + len(m.Start)

		end := strings.Index(content[bodyStart:], m.End)
		if end < 0 {
			break
		}
		end += bodyStart

		indent := lineIndent(content, start)

		b.WriteString(content[pos:bodyStart])
		for _, line := range lines {
			b.WriteString(nl)
			b.WriteString(indent)
			b.WriteString(line)
		}
		b.WriteString(nl)
		b.WriteString(indent)
		b.WriteString(m.End)

		pos = end + len(m.End)
		found = true
	}

	if !found {
		return content, false
	}

	b.WriteString(content[pos:])
	return b.String(), true
}

// HoldsContent reports whether any complete Start…End region of content has
// more than whitespace between its markers.
func HoldsContent(content string, m Markers) bool {
	if m.Start == "" || m.End == "" {
		return false
	}

	pos := 0
	for {
		start := strings.Index(content[pos:], m.Start)
		if start < 0 {
			return false
		}
		bodyStart := pos + start + len(m.Start)

		end := strings.Index(content[bodyStart:], m.End)
		if end < 0 {
			return false
		}
		if strings.TrimSpace(content[bodyStart:bodyStart+end]) != "" {
			return true
		}
		pos = bodyStart + end + len(m.End)
	}
}

func newline(content string) string {
	if strings.Contains(content, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

// lineIndent returns the leading spaces and tabs of the line containing offset.
func lineIndent(content string, offset int) string {
	lineStart := strings.LastIndexByte(content[:offset], '\n') + 1
	line := content[lineStart:offset]
	trimmed := strings.TrimLeft(line, " \t")
	return line[:len(line)-len(trimmed)]
}
