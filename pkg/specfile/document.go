package specfile

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/moby/sys/atomicwriter"

	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

// Extension is the file extension of PyInstaller spec files.
const Extension = ".spec"

// Document is a text file as a sequence of lines. Each line keeps its
// terminator ("\n" or "\r\n"); only the last line may lack one. Joining the
// lines reproduces the original text exactly.
type Document []string

// ParseDocument splits text into a Document.
func ParseDocument(text string) Document {
	if text == "" {
		return Document{}
	}
	return Document(strings.SplitAfter(text, "\n")).trim()
}

// trim drops the empty element SplitAfter leaves after a final newline.
func (d Document) trim() Document {
	if n := len(d); n > 0 && d[n-1] == "" {
		return d[:n-1]
	}
	return d
}

// String joins the lines back into the original text.
func (d Document) String() string {
	return strings.Join(d, "")
}

// Clone returns an independent copy of d.
func (d Document) Clone() Document {
	return slices.Clone(d)
}

// ReadDocument reads the whole file at path.
func ReadDocument(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "spec file %s", path)
	}
	if err != nil {
		return nil, err
	}
	return ParseDocument(string(data)), nil
}

// WriteDocument replaces the file at path with doc. The new content is
// written to a temporary file in the same directory and renamed into place,
// so readers see either the old or the new file, never a partial one.
// The existing file mode is kept; new files get 0644.
func WriteDocument(path string, doc Document) error {
	mode := os.FileMode(0o644)
	if fi, err := os.Stat(path); err == nil {
		mode = fi.Mode().Perm()
	}
	return atomicwriter.WriteFile(path, []byte(doc.String()), mode)
}

// Patch merges names into the spec file at path. The file is rewritten only
// when its content changes; on any error it is left untouched. It returns
// the document before and after patching.
func Patch(path string, names []string) (before, after Document, err error) {
	before, err = ReadDocument(path)
	if err != nil {
		return nil, nil, err
	}
	after, err = ApplyExcludes(before, names)
	if err != nil {
		return before, before, errs.Wrap(errs.GetCode(err), err, "patch %s", path)
	}
	if after.String() == before.String() {
		return before, after, nil
	}
	if err := WriteDocument(path, after); err != nil {
		return before, before, err
	}
	return before, after, nil
}

// Discover returns the spec files directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var found []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), Extension) {
			found = append(found, filepath.Join(dir, e.Name()))
		}
	}
	return found, nil
}
