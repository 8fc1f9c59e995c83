package python

import (
	"slices"
	"strings"
	"testing"
)

func TestRequirementName(t *testing.T) {
	tests := []struct {
		spec   string
		want   string
		wantOK bool
	}{
		{"urllib3 (<3,>=1.21.1)", "urllib3", true},
		{"charset-normalizer<4,>=2", "charset-normalizer", true},
		{"idna>=2.5; python_version >= \"3\"", "idna", true},
		{`PySocks!=1.5.7,>=1.5.6; extra == "socks"`, "", false},
		{`pytest ; extra=='test'`, "", false},
		{"zope.interface", "zope.interface", true},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, ok := requirementName(tt.spec)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("requirementName(%q) = (%q, %v), want (%q, %v)", tt.spec, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestParseCoreMetadata(t *testing.T) {
	content := `Metadata-Version: 2.1
Name: requests
Version: 2.31.0
Summary: Python HTTP for Humans.
Requires-Python: >=3.7
License: Apache 2.0
Classifier: Development Status :: 5 - Production/Stable
Classifier: Programming Language :: Python
Requires-Dist: charset-normalizer (<4,>=2)
Requires-Dist: idna (<4,>=2.5)
Requires-Dist: urllib3 (<3,>=1.21.1)
Requires-Dist: certifi (>=2017.4.17)
Requires-Dist: PySocks (!=1.5.7,>=1.5.6) ; extra == 'socks'
Requires-Dist: chardet (<6,>=3.0.2) ; extra == 'use_chardet_on_py3'
Requires-Dist: Idna (>=1)
Provides-Extra: socks

# Requests

**Requests** is a simple, yet elegant, HTTP library.
Name: not-a-header
`
	d, err := parseCoreMetadata(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parseCoreMetadata() error: %v", err)
	}
	if d.Name != "requests" || d.Version != "2.31.0" {
		t.Errorf("got %s %s, want requests 2.31.0", d.Name, d.Version)
	}

	want := []string{"charset-normalizer", "idna", "urllib3", "certifi"}
	if !slices.Equal(d.Requires, want) {
		t.Errorf("Requires = %v, want %v", d.Requires, want)
	}
}

func TestParseCoreMetadataNoBody(t *testing.T) {
	d, err := parseCoreMetadata(strings.NewReader("Metadata-Version: 2.1\nName: six\nVersion: 1.16.0"))
	if err != nil {
		t.Fatalf("parseCoreMetadata() error: %v", err)
	}
	if d.Name != "six" || len(d.Requires) != 0 {
		t.Errorf("got %+v", d)
	}
}

func TestParseEggRequires(t *testing.T) {
	content := `setuptools>=40
six

[:python_version < "3.8"]
importlib-metadata

[test]
pytest
`
	got, err := parseEggRequires(strings.NewReader(content))
	if err != nil {
		t.Fatalf("parseEggRequires() error: %v", err)
	}
	if !slices.Equal(got, []string{"setuptools", "six"}) {
		t.Errorf("parseEggRequires() = %v", got)
	}
}
