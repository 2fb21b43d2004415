package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTopologyCommand(t *testing.T) {
	out, err := run(t, "topology", "testdata/pair.toml")
	if err != nil {
		t.Fatal(err)
	}
	for _, w := range []string{"digraph G {", `"a" -> "b"`, `label="Source"`} {
		if !strings.Contains(out, w) {
			t.Errorf("DOT missing %q:\n%s", w, out)
		}
	}

	path := filepath.Join(t.TempDir(), "pair.svg")
	if _, err := run(t, "topology", "testdata/pair.toml", "-o", path, "--detailed"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "<svg") {
		t.Error("topology SVG not written")
	}
}

func TestIsDOTPath(t *testing.T) {
	for path, want := range map[string]bool{"g.dot": true, "g.GV": true, "g.svg": false, "dot": false} {
		if got := isDOTPath(path); got != want {
			t.Errorf("isDOTPath(%q) = %v", path, got)
		}
	}
}
