package deps

import (
	"context"
	"slices"
	"testing"

	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"requests", "requests"},
		{"Requests", "requests"},
		{"  click \n", "click"},
		{"typing_extensions", "typing-extensions"},
		{"zope.interface", "zope-interface"},
		{"Foo__-.Bar", "foo-bar"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNameSet(t *testing.T) {
	s := NewNameSet("Six", "six", "urllib3", "")

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if !s.Has("SIX") {
		t.Error("Has(SIX) = false, want true")
	}
	if added := s.Add("idna", "six"); added != 1 {
		t.Errorf("Add() = %d, want 1", added)
	}
	if got := s.Names(); !slices.Equal(got, []string{"idna", "six", "urllib3"}) {
		t.Errorf("Names() = %v", got)
	}

	if got, _ := s.Get("SIX"); got != "six" {
		t.Errorf("Get(SIX) = %q, want six", got)
	}

	c := s.Clone()
	c.Add("extra")
	if s.Has("extra") {
		t.Error("Clone() should not share storage")
	}
}

func TestStaticSource(t *testing.T) {
	ctx := context.Background()
	src := StaticSource{"Requests": {"urllib3"}, "urllib3": nil}

	got, err := src.DependenciesOf(ctx, "requests")
	if err != nil {
		t.Fatalf("DependenciesOf() error: %v", err)
	}
	if !slices.Equal(got, []string{"urllib3"}) {
		t.Errorf("DependenciesOf() = %v", got)
	}

	if _, err := src.DependenciesOf(ctx, "missing"); !errs.Is(err, errs.ErrCodePackageNotFound) {
		t.Errorf("DependenciesOf(missing) error = %v, want PACKAGE_NOT_FOUND", err)
	}

	names, _ := src.AllKnownNames(ctx)
	if !slices.Equal(names, []string{"Requests", "urllib3"}) {
		t.Errorf("AllKnownNames() = %v", names)
	}
}

func TestComputeExclusions(t *testing.T) {
	installed := NewNameSet("requests", "click", "six", "urllib3", "unused_pkg")
	closure := NewNameSet("requests", "click", "six", "urllib3")

	got := ComputeExclusions(installed, closure)
	if !slices.Equal(got, []string{"unused_pkg"}) {
		t.Errorf("ComputeExclusions() = %v, want [unused_pkg]", got)
	}
}

func TestNameSetKeepsFirstSpelling(t *testing.T) {
	s := NewNameSet("Typing_Extensions", "typing-extensions", "Zope.Interface")

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	want := []string{"typing_extensions", "zope.interface"}
	if got := s.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
	if !s.Has("zope-interface") {
		t.Error("Has(zope-interface) = false, want true")
	}
}

func TestComputeExclusionsSpelling(t *testing.T) {
	installed := NewNameSet("PyYAML", "typing_extensions", "Pillow")
	closure := NewNameSet("pyyaml", "typing-extensions")

	if got := ComputeExclusions(installed, closure); !slices.Equal(got, []string{"pillow"}) {
		t.Errorf("ComputeExclusions() = %v, want [pillow]", got)
	}
}

func TestComputeExclusionsPartition(t *testing.T) {
	installed := NewNameSet("a", "b", "c", "d", "e", "f")
	closure := NewNameSet("b", "d", "f")

	excluded := NewNameSet(ComputeExclusions(installed, closure)...)
	for n := range excluded {
		if closure.Has(n) {
			t.Errorf("%s is both excluded and required", n)
		}
	}

	union := closure.Clone()
	union.Add(excluded.Names()...)
	if !slices.Equal(union.Names(), installed.Names()) {
		t.Errorf("exclusions ∪ closure = %v, want %v", union.Names(), installed.Names())
	}
}

func TestComputeExclusionsDeterministic(t *testing.T) {
	installed := NewNameSet("zeta", "Alpha", "mu", "beta", "omega", "kappa")
	closure := NewNameSet("mu")

	first := ComputeExclusions(installed, closure)
	for i := 0; i < 20; i++ {
		if got := ComputeExclusions(installed, closure); !slices.Equal(got, first) {
			t.Fatalf("run %d: %v, want %v", i, got, first)
		}
	}
	if !slices.IsSorted(first) {
		t.Errorf("ComputeExclusions() = %v, want sorted", first)
	}
}

func TestMissingFromInstalled(t *testing.T) {
	installed := NewNameSet("a", "b")
	closure := NewNameSet("a", "c")

	if got := MissingFromInstalled(installed, closure); !slices.Equal(got, []string{"c"}) {
		t.Errorf("MissingFromInstalled() = %v, want [c]", got)
	}
}
