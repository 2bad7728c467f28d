package repl

import (
	"reflect"
	"testing"
)

func TestCompleter_Complete(t *testing.T) {
	c := NewCompleter()

	tests := []struct {
		prefix string
		want   []string
	}{
		{"qpop", []string{"qpop", "qpop_back", "qpop_front"}},
		{"hi", []string{"hincr", "history"}},
		{"hist", []string{"history"}},
		{"ztop", []string{"ztopn"}},
		{"nope", nil},
	}

	for _, tt := range tests {
		t.Run(tt.prefix, func(t *testing.T) {
			if got := c.Complete(tt.prefix); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Complete(%q) = %q, want %q", tt.prefix, got, tt.want)
			}
		})
	}
}

func TestCompleter_IncludesShellWords(t *testing.T) {
	c := NewCompleter()
	for _, w := range shellWords {
		found := false
		for _, got := range c.Complete(w) {
			if got == w {
				found = true
			}
		}
		if !found {
			t.Errorf("Complete(%q) is missing %q", w, w)
		}
	}
}
