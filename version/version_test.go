package version

import "testing"

func TestGetFullVersion(t *testing.T) {
	if got := GetFullVersion(); got != "dev" {
		t.Errorf("expected dev, got %s", got)
	}

	v, c, d := Version, GitCommit, BuildDate
	defer func() { Version, GitCommit, BuildDate = v, c, d }()
	Version, GitCommit, BuildDate = "1.2.0", "abc123", "2026-10-19"
	if got := GetFullVersion(); got != "1.2.0 (commit abc123, built 2026-10-19)" {
		t.Errorf("unexpected full version %q", got)
	}
	if got := GetVersion(); got != "1.2.0" {
		t.Errorf("expected 1.2.0, got %s", got)
	}
}
