package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func withVersion(t *testing.T, version, commit string) {
	t.Helper()
	oldV, oldC := Version, Commit
	Version, Commit = version, commit
	t.Cleanup(func() { Version, Commit = oldV, oldC })
}

func TestShort(t *testing.T) {
	tests := []struct {
		version, commit, want string
	}{
		{"v1.2.0", "3f2a9c1e0b", "v1.2.0 (3f2a9c1)"},
		{"v1.2.0", "abc", "v1.2.0 (abc)"},
		{"v1.2.0", "none", "v1.2.0"},
	}
	for _, tt := range tests {
		withVersion(t, tt.version, tt.commit)
		if got := Short(); got != tt.want {
			t.Errorf("Short() = %q, want %q", got, tt.want)
		}
	}
}

func TestResolvedFallsBackToModuleVersion(t *testing.T) {
	withVersion(t, "dev", "none")
	old := readBuildInfo
	t.Cleanup(func() { readBuildInfo = old })

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "v0.3.1"}}, true
	}
	if got := Resolved(); got != "v0.3.1" {
		t.Errorf("Resolved() = %q, want v0.3.1", got)
	}

	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true
	}
	if got := Resolved(); got != "dev" {
		t.Errorf("Resolved() = %q, want dev", got)
	}
}

func TestTemplate(t *testing.T) {
	withVersion(t, "v1.0.0", "abc")
	if got := Template(); !strings.Contains(got, "{{.Name}} version v1.0.0") {
		t.Errorf("Template() = %q", got)
	}
}
