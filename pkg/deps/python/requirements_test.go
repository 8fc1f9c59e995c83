package python

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

func TestParseRequirements(t *testing.T) {
	content := `# Test requirements
requests>=2.28.0
Click==8.1.0
pydantic[email]>=2.0  # inline comment
httpx
typing_extensions ; python_version < "3.11"
mypkg @ https://example.com/mypkg-1.0.zip#sha256=abc

-e ./local-package
-r other.txt
--index-url https://pypi.org/simple
git+https://github.com/user/repo.git
https://example.com/archive.tar.gz
`
	reqs, err := ParseRequirements(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ParseRequirements() error: %v", err)
	}

	want := []string{"requests", "click", "pydantic", "httpx", "typing_extensions", "mypkg"}
	if got := Names(reqs); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}

	if reqs[1].Line != 3 {
		t.Errorf("click Line = %d, want 3", reqs[1].Line)
	}
	if reqs[2].Raw != "pydantic[email]>=2.0" {
		t.Errorf("pydantic Raw = %q", reqs[2].Raw)
	}
}

func TestParseRequirementsDelimiter(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"requests==2.0", "requests"},
		{"click == 8.0", "click"},
		{"six", "six"},
		{"Django~=4.2", "django"},
		{"numpy!=1.0,>=0.9", "numpy"},
		{"zope.interface<6", "zope.interface"},
		{"pkg===1.0", "pkg"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			reqs, err := ParseRequirements(strings.NewReader(tt.line))
			if err != nil {
				t.Fatalf("ParseRequirements(%q) error: %v", tt.line, err)
			}
			if len(reqs) != 1 || reqs[0].Name != tt.want {
				t.Errorf("ParseRequirements(%q) = %v, want %q", tt.line, reqs, tt.want)
			}
		})
	}
}

func TestParseRequirementsRejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty name", "requests\n==1.0\n", "line 2"},
		{"duplicate", "requests==2.0\nclick\nRequests>=1\n", "already required on line 1"},
		{"duplicate after normalizing", "typing_extensions\ntyping-extensions\n", "already required"},
		{"bad character", "foo$bar\n", "line 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequirements(strings.NewReader(tt.content))
			if !errs.Is(err, errs.ErrCodeInvalidRequirement) {
				t.Fatalf("error = %v, want INVALID_REQUIREMENT", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should contain %q", err, tt.want)
			}
		})
	}
}

func TestParseRequirementsEmpty(t *testing.T) {
	reqs, err := ParseRequirements(strings.NewReader("\n\n# nothing\n"))
	if err != nil {
		t.Fatalf("ParseRequirements() error: %v", err)
	}
	if len(reqs) != 0 {
		t.Errorf("got %d requirements, want 0", len(reqs))
	}
}

func TestReadRequirements(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	if err := os.WriteFile(path, []byte("requests==2.0\r\nclick==8.0\r\n"), 0644); err != nil {
		t.Fatal(err)
	}

	reqs, err := ReadRequirements(path)
	if err != nil {
		t.Fatalf("ReadRequirements() error: %v", err)
	}
	if got := Names(reqs); !slices.Equal(got, []string{"requests", "click"}) {
		t.Errorf("Names() = %v", got)
	}
}

func TestReadRequirementsMissing(t *testing.T) {
	_, err := ReadRequirements(filepath.Join(t.TempDir(), "requirements.txt"))
	if !errs.Is(err, errs.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
}

func TestReadRequirementsInvalidKeepsCode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "requirements.txt")
	if err := os.WriteFile(path, []byte("a\na\n"), 0644); err != nil {
		t.Fatal(err)
	}

	_, err := ReadRequirements(path)
	if !errs.Is(err, errs.ErrCodeInvalidRequirement) {
		t.Errorf("error = %v, want INVALID_REQUIREMENT", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Errorf("error %q should name the file", err)
	}
}
