package specfile

import (
	"regexp"
	"strings"

	"github.com/amastis/pyinstaller-excluder/pkg/deps"
	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

const (
	emptyMarker = "excludes=[],"
	openMarker  = "excludes=["
	closeMarker = "],"
)

var tolerantRE = regexp.MustCompile(`\bexcludes\s*=\s*\[([^\[\]]*)\]`)

// slot locates the list contents on one line: line[open:close] is the text
// between the brackets.
type slot struct {
	line, open, close int
}

// FindSlot returns the 0-based index of the line holding the excludes slot.
func FindSlot(doc Document) (int, bool) {
	s, ok := findSlot(doc)
	return s.line, ok
}

func findSlot(doc Document) (slot, bool) {
	for i, line := range doc {
		if j := strings.Index(line, emptyMarker); j >= 0 {
			at := j + len(openMarker)
			return slot{line: i, open: at, close: at}, true
		}
		if j := strings.Index(line, openMarker); j >= 0 {
			at := j + len(openMarker)
			if k := strings.Index(line[at:], closeMarker); k >= 0 {
				return slot{line: i, open: at, close: at + k}, true
			}
		}
	}
	for i, line := range doc {
		m := tolerantRE.FindStringSubmatchIndex(line)
		if m == nil || isComment(line[:m[0]]) {
			continue
		}
		return slot{line: i, open: m[2], close: m[3]}, true
	}
	return slot{}, false
}

// isComment reports whether a match preceded by prefix sits inside a
// Python comment, either a full-line one or one trailing code.
func isComment(prefix string) bool {
	return strings.Contains(prefix, "#")
}

// ApplyExcludes returns a copy of doc with names merged into its excludes
// slot; see the package documentation for the recognized forms. Only the
// slot line changes. If doc has no slot it is returned as is together with
// an ErrCodeNoExcludesSlot error.
func ApplyExcludes(doc Document, names []string) (Document, error) {
	s, ok := findSlot(doc)
	if !ok {
		return doc, errs.New(errs.ErrCodeNoExcludesSlot, "no excludes=[...] slot found")
	}

	line := doc[s.line]
	inner := line[s.open:s.close]
	add := newEntries(existingEntries(inner), names)
	if len(add) == 0 {
		return doc.Clone(), nil
	}

	var patched string
	if strings.TrimSpace(inner) == "" {
		patched = line[:s.open] + FormatList(add) + line[s.close:]
	} else {
		kept := strings.TrimRight(inner, " \t")
		sep := ", "
		if strings.HasSuffix(kept, ",") {
			sep = " "
		}
		end := s.open + len(kept)
		patched = line[:end] + sep + FormatList(add) + line[end:]
	}

	out := doc.Clone()
	out[s.line] = patched
	return out, nil
}

// existingEntries returns the canonical names of the string literals already
// in a list body such as "'a', \"b\"". Non-literal entries are ignored.
func existingEntries(inner string) deps.NameSet {
	set := make(deps.NameSet)
	for _, e := range strings.Split(inner, ",") {
		e = strings.TrimSpace(e)
		if len(e) >= 2 && (e[0] == '\'' || e[0] == '"') && e[len(e)-1] == e[0] {
			set.Add(e[1 : len(e)-1])
		}
	}
	return set
}

// newEntries returns names not present in existing, keeping their order and
// dropping repeats.
func newEntries(existing deps.NameSet, names []string) []string {
	seen := existing.Clone()
	var out []string
	for _, n := range names {
		if seen.Add(n) == 1 {
			out = append(out, n)
		}
	}
	return out
}

var literalEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`, "\n", `\n`, "\r", `\r`)

// FormatList renders names as the body of a Python list of string
// literals: 'a', 'b'.
func FormatList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = "'" + literalEscaper.Replace(n) + "'"
	}
	return strings.Join(quoted, ", ")
}

// FormatExcludes renders the full excludes argument for names, as a user
// would paste it into a spec file: excludes=['a', 'b'],
func FormatExcludes(names []string) string {
	return "excludes=[" + FormatList(names) + "],"
}
