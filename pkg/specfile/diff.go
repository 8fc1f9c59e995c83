package specfile

import (
	"fmt"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Diff renders the line changes between before and after as a compact
// unified-style listing headed by name. It returns "" when nothing changed.
func Diff(name string, before, after Document) string {
	a, b := before.String(), after.String()
	if a == b {
		return ""
	}

	dmp := diffmatchpatch.New()
	ca, cb, lines := dmp.DiffLinesToChars(a, b)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(ca, cb, false), lines)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", name, name)

	lineNo := 1
	inHunk := false
	for _, d := range diffs {
		text := ParseDocument(d.Text)
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			lineNo += len(text)
			inHunk = false
			continue
		case diffmatchpatch.DiffDelete:
			writeHunkHeader(&sb, &inHunk, lineNo)
			writeLines(&sb, "-", text)
			lineNo += len(text)
		case diffmatchpatch.DiffInsert:
			writeHunkHeader(&sb, &inHunk, lineNo)
			writeLines(&sb, "+", text)
		}
	}
	return sb.String()
}

func writeHunkHeader(sb *strings.Builder, inHunk *bool, lineNo int) {
	if !*inHunk {
		fmt.Fprintf(sb, "@@ line %d @@\n", lineNo)
		*inHunk = true
	}
}

func writeLines(sb *strings.Builder, prefix string, lines Document) {
	for _, l := range lines {
		sb.WriteString(prefix)
		sb.WriteString(strings.TrimRight(l, "\r\n"))
		sb.WriteByte('\n')
	}
}
