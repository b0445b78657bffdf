package shaders

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNames(t *testing.T) {
	if diff := cmp.Diff([]string{"crt", "passthrough"}, Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}
}

func TestSources(t *testing.T) {
	for _, name := range Names() {
		if !Exists(name) {
			t.Errorf("shader %q is incomplete", name)
			continue
		}
		for _, typ := range []Type{Vertex, Fragment} {
			src, _ := Source(name, typ)
			if !strings.HasPrefix(src, "#version 330 core") {
				t.Errorf("%s%s: missing #version 330 core", name, typ.ext())
			}
			if typ == Fragment && !strings.Contains(src, "uniform sampler2D screen;") {
				t.Errorf("%s%s: missing screen sampler", name, typ.ext())
			}
		}
	}
	if Exists("missing") {
		t.Errorf("Exists(missing) = true")
	}
}
