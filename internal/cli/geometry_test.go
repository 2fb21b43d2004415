package cli

import (
	"strings"
	"testing"
)

func TestGeometryCommand(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want []string
	}{
		{
			name: "grows for five inputs",
			args: []string{"geometry", "--inputs", "5", "--outputs", "2"},
			want: []string{"160", "40", "60", "80", "100", "120"},
		},
		{
			name: "placement",
			args: []string{"geometry", "--at", "997,3"},
			want: []string{"(997,3)", "(880,20)"},
		},
		{
			name: "title",
			args: []string{"geometry", "--title", "Mixer"},
			want: []string{`"Mixer"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if err != nil {
				t.Fatal(err)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestGeometryRejects(t *testing.T) {
	for _, args := range [][]string{
		{"geometry", "--inputs", "-1"},
		{"geometry", "--at", "10"},
		{"geometry", "--at", "x,y"},
		{"geometry", "--title", "two\nlines"},
	} {
		if _, err := run(t, args...); err == nil {
			t.Errorf("%v: expected error", args)
		}
	}
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 12.5, -3 ")
	if err != nil {
		t.Fatal(err)
	}
	if p.X != 12.5 || p.Y != -3 {
		t.Errorf("parsePoint() = %v", p)
	}
}
