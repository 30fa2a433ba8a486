package axo

import (
	"fmt"
	"strings"
)

// Render formats one diagnostic the way the CLI prints it to stderr:
// a header, a "--> file:line:col" location line, up to three lines of
// source context on each side of the span with carets under the
// offending columns, and any hints.
func Render(source []byte, d Diagnostic) string {
	var b strings.Builder

	fmt.Fprintf(&b, "error: %s\n", d.Error())

	span := d.GetSpan()
	path := span.Start.Loc.String()
	fmt.Fprintf(&b, "  --> %s:%s\n", path, span)

	if lines := splitLines(source); len(lines) > 0 {
		writeContext(&b, lines, span)
	}

	for _, hint := range d.GetHints() {
		fmt.Fprintf(&b, "hint: %s\n", hint)
	}

	return b.String()
}

func splitLines(source []byte) []string {
	if len(source) == 0 {
		return nil
	}
	return strings.Split(string(source), "\n")
}

const contextLines = 3

func writeContext(b *strings.Builder, lines []string, span Span) {
	startLine := int(span.Start.Line)
	endLine := int(span.End.Line)

	from := startLine - contextLines
	if from < 1 {
		from = 1
	}
	to := endLine + contextLines
	if to > len(lines) {
		to = len(lines)
	}

	for ln := from; ln <= to; ln++ {
		if ln < 1 || ln > len(lines) {
			continue
		}
		text := lines[ln-1]
		fmt.Fprintf(b, "%5d | %s\n", ln, text)

		if ln >= startLine && ln <= endLine {
			caretStart := 1
			if ln == startLine {
				caretStart = int(span.Start.Column)
			}
			caretEnd := len(text) + 1
			if ln == endLine {
				caretEnd = int(span.End.Column)
				if caretEnd <= caretStart {
					caretEnd = caretStart + 1
				}
			}
			fmt.Fprintf(b, "      | %s%s\n", strings.Repeat(" ", caretStart-1), strings.Repeat("^", caretEnd-caretStart))
		}
	}
}

// RenderAll formats every accumulated diagnostic in ctx against source,
// in stage order, separated by blank lines.
func RenderAll(source []byte, ctx *Context) string {
	var b strings.Builder
	for i, d := range ctx.Diagnostics() {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(Render(source, d))
	}
	return b.String()
}
