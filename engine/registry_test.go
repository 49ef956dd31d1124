package engine

import (
	"context"
	"slices"
	"testing"

	"github.com/wippyai/spellbound/errors"
)

type stubBackend struct{ name string }

func (b stubBackend) Name() string { return b.name }

func (b stubBackend) Open(context.Context, Config) (Session, error) {
	return nil, errors.New(errors.PhaseSetup, errors.KindSubsystemInit).Backend(b.name).Build()
}

func TestRegistry(t *testing.T) {
	const name = "registry-test"
	Register(stubBackend{name: name})
	t.Cleanup(func() { unregister(name) })

	b, err := Lookup(name)
	if err != nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	if b.Name() != name {
		t.Errorf("Name = %q, want %q", b.Name(), name)
	}
	if !slices.Contains(Names(), name) {
		t.Errorf("Names() = %v, missing %q", Names(), name)
	}
	if !slices.IsSorted(Names()) {
		t.Errorf("Names() not sorted: %v", Names())
	}
}

func TestRegistry_UnknownBackend(t *testing.T) {
	_, err := Lookup("no-such-backend")
	if !errors.IsKind(err, errors.KindUnknownBackend) {
		t.Fatalf("Lookup error = %v, want unknown_backend", err)
	}
}

func TestRegistry_Panics(t *testing.T) {
	tests := []struct {
		name string
		fn   func()
	}{
		{"nil backend", func() { Register(nil) }},
		{"duplicate", func() {
			Register(stubBackend{name: "registry-dup"})
			defer unregister("registry-dup")
			Register(stubBackend{name: "registry-dup"})
		}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			tc.fn()
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	if cfg.Language != DefaultLanguage {
		t.Errorf("Language = %q, want %q", cfg.Language, DefaultLanguage)
	}
	if cfg.DictDir == "" {
		t.Error("DictDir not defaulted")
	}
	if cfg.Logger == nil {
		t.Error("Logger not defaulted")
	}

	cfg = Config{Language: "de_DE", DictDir: "/tmp/dicts"}.WithDefaults()
	if cfg.Language != "de_DE" || cfg.DictDir != "/tmp/dicts" {
		t.Errorf("explicit fields overwritten: %+v", cfg)
	}
}

func TestIgnoreScope_String(t *testing.T) {
	tests := []struct {
		want  string
		scope IgnoreScope
	}{
		{"session", ScopeSession},
		{"process", ScopeProcess},
		{"unknown", IgnoreScope(9)},
	}
	for _, tc := range tests {
		if got := tc.scope.String(); got != tc.want {
			t.Errorf("%d.String() = %q, want %q", tc.scope, got, tc.want)
		}
	}
}
