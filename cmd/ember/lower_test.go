package main

import (
	"strings"
	"testing"

	"ember/internal/diag"
)

func TestParseAndValidate(t *testing.T) {
	env, err := newBackendEnv("cuda")
	if err != nil {
		t.Fatalf("newBackendEnv: %v", err)
	}

	src := "module m\nfunc k\n  %r = call intrin.sin float32 (%x)\n"
	mod, err := parseAndValidate([]byte(src), env)
	if err != nil {
		t.Fatalf("parseAndValidate: %v", err)
	}
	if len(mod.Funcs) != 1 || len(mod.Funcs[0].Body) != 1 {
		t.Fatalf("unexpected module shape: %+v", mod)
	}

	_, err = parseAndValidate([]byte("not a module\n"), env)
	if err == nil {
		t.Fatalf("malformed input must fail")
	}
	if !strings.Contains(err.Error(), diag.ParseSyntax.String()) {
		t.Fatalf("reader failure must carry the syntax code, got %v", err)
	}
}
