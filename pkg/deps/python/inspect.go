package python

import (
	"encoding/json"
	"io"
	"os"

	errs "github.com/amastis/pyinstaller-excluder/pkg/errors"
)

// inspectReport is the subset of the `pip inspect` JSON report we read.
type inspectReport struct {
	Version   string             `json:"version"`
	Installed []inspectInstalled `json:"installed"`
}

type inspectInstalled struct {
	Metadata struct {
		Name         string   `json:"name"`
		Version      string   `json:"version"`
		RequiresDist []string `json:"requires_dist"`
	} `json:"metadata"`
}

// ParseInspectReport indexes the distributions listed in a `pip inspect`
// report.
func ParseInspectReport(r io.Reader) (*Index, error) {
	var report inspectReport
	if err := json.NewDecoder(r).Decode(&report); err != nil {
		return nil, errs.Wrap(errs.ErrCodeInvalidMetadata, err, "decode pip inspect report")
	}
	if report.Version != "" && report.Version != "1" {
		return nil, errs.New(errs.ErrCodeInvalidMetadata, "unsupported pip inspect report version %q", report.Version)
	}

	dists := make([]Distribution, 0, len(report.Installed))
	for _, inst := range report.Installed {
		m := inst.Metadata
		dists = append(dists, Distribution{
			Name:     m.Name,
			Version:  m.Version,
			Requires: requirementNames(m.RequiresDist),
		})
	}
	return NewIndex(dists), nil
}

// LoadInspectReport reads a `pip inspect` report saved at path.
func LoadInspectReport(path string) (*Index, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errs.Wrap(errs.ErrCodeFileNotFound, err, "pip inspect report %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ParseInspectReport(f)
}
