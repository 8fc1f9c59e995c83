package specfile

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

func TestParseDocumentRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		lines int
	}{
		{"empty", "", 0},
		{"single line no newline", "a", 1},
		{"trailing newline", "a\nb\n", 2},
		{"no trailing newline", "a\nb", 2},
		{"crlf", "a\r\nb\r\n", 2},
		{"mixed", "a\r\nb\nc", 3},
		{"blank lines", "\n\n\n", 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ParseDocument(tt.text)
			if len(doc) != tt.lines {
				t.Errorf("len = %d, want %d", len(doc), tt.lines)
			}
			if doc.String() != tt.text {
				t.Errorf("String() = %q, want %q", doc.String(), tt.text)
			}
		})
	}
}

func TestReadDocumentNotFound(t *testing.T) {
	_, err := ReadDocument(filepath.Join(t.TempDir(), "missing.spec"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestWriteDocumentKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.spec")
	if err := os.WriteFile(path, []byte("old\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if err := WriteDocument(path, ParseDocument("new\n")); err != nil {
		t.Fatalf("WriteDocument() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "new\n" {
		t.Errorf("content = %q", data)
	}
	fi, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("mode = %v, want 0600", fi.Mode().Perm())
	}
}

func TestPatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.spec")
	if err := os.WriteFile(path, []byte(generatedSpec), 0o644); err != nil {
		t.Fatal(err)
	}

	before, after, err := Patch(path, []string{"unused_pkg"})
	if err != nil {
		t.Fatalf("Patch() error: %v", err)
	}
	if before.String() != generatedSpec {
		t.Error("before does not match the original file")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != after.String() {
		t.Error("file content does not match returned document")
	}
	if _, ok := FindSlot(after); !ok {
		t.Fatal("patched document lost its slot")
	}

	// Applying the same names again leaves the file as it is.
	_, again, err := Patch(path, []string{"unused_pkg"})
	if err != nil {
		t.Fatalf("second Patch() error: %v", err)
	}
	if again.String() != after.String() {
		t.Errorf("second Patch() changed the file:\n%s", again)
	}
}

func TestPatchWithoutSlotLeavesFileUntouched(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.spec")
	const text = "a = Analysis(['main.py'])\r\n"
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		t.Fatal(err)
	}

	_, _, err := Patch(path, []string{"x"})
	if !errs.Is(err, errs.ErrCodeNoExcludesSlot) {
		t.Fatalf("error = %v, want NO_EXCLUDES_SLOT", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != text {
		t.Errorf("file changed to %q", data)
	}
}

func TestPatchMissingFile(t *testing.T) {
	_, _, err := Patch(filepath.Join(t.TempDir(), "none.spec"), []string{"x"})
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"zeta.spec", "alpha.spec", "requirements.txt", "spec"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "build.spec"), 0o755); err != nil {
		t.Fatal(err)
	}

	got, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover() error: %v", err)
	}
	want := []string{filepath.Join(dir, "alpha.spec"), filepath.Join(dir, "zeta.spec")}
	if !slices.Equal(got, want) {
		t.Errorf("Discover() = %v, want %v", got, want)
	}
}

func TestDiscoverMissingDir(t *testing.T) {
	if _, err := Discover(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Error("expected error for missing directory")
	}
}
