package python

import (
	"context"
	"slices"
	"testing"

	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

func TestIndex(t *testing.T) {
	ctx := context.Background()
	idx := NewIndex([]Distribution{
		{Name: "Jinja2", Version: "3.1.2", Requires: []string{"MarkupSafe"}},
		{Name: "MarkupSafe", Version: "2.1.3"},
		{Name: "markupsafe", Version: "0.0.1"},
		{Name: ""},
	})

	if idx.Len() != 2 {
		t.Errorf("Len() = %d, want 2", idx.Len())
	}

	got, err := idx.DependenciesOf(ctx, "JINJA2")
	if err != nil {
		t.Fatalf("DependenciesOf() error: %v", err)
	}
	if !slices.Equal(got, []string{"MarkupSafe"}) {
		t.Errorf("DependenciesOf() = %v", got)
	}

	if d, ok := idx.Lookup("markupsafe"); !ok || d.Version != "2.1.3" {
		t.Errorf("Lookup() = %+v, %v; first distribution should win", d, ok)
	}

	if _, err := idx.DependenciesOf(ctx, "flask"); !errs.Is(err, errs.ErrCodePackageNotFound) {
		t.Errorf("DependenciesOf(flask) error = %v, want PACKAGE_NOT_FOUND", err)
	}

	names, _ := idx.AllKnownNames(ctx)
	if !slices.Equal(names, []string{"Jinja2", "MarkupSafe"}) {
		t.Errorf("AllKnownNames() = %v", names)
	}
}
