//go:build darwin || freebsd || linux

package hunspell

import (
	"fmt"
	"strings"
	"sync"

	"github.com/ebitengine/purego"

	"github.com/wippyai/spellbound/engine"
)

func init() {
	engine.Register(Backend{load: loadLibrary})
}

var libraryNames = []string{
	"libhunspell-1.7.so.0",
	"libhunspell-1.7.so",
	"libhunspell-1.6.so.0",
	"libhunspell.so",
	"/opt/homebrew/lib/libhunspell-1.7.0.dylib",
	"/usr/local/lib/libhunspell-1.7.0.dylib",
	"libhunspell-1.7.0.dylib",
	"libhunspell.dylib",
}

var (
	libMu  sync.Mutex
	libHun *nativeLibrary
)

// nativeLibrary holds the libhunspell entry points resolved with purego.
type nativeLibrary struct {
	create      func(aff, dic string) uintptr
	destroy     func(h uintptr)
	spell       func(h uintptr, word string) int32
	add         func(h uintptr, word string) int32
	dicEncoding func(h uintptr) string
}

func (l *nativeLibrary) Create(aff, dic string) uintptr     { return l.create(aff, dic) }
func (l *nativeLibrary) Destroy(h uintptr)                  { l.destroy(h) }
func (l *nativeLibrary) Spell(h uintptr, word string) int32 { return l.spell(h, word) }
func (l *nativeLibrary) Add(h uintptr, word string) int32   { return l.add(h, word) }
func (l *nativeLibrary) DicEncoding(h uintptr) string       { return l.dicEncoding(h) }

// loadLibrary opens libhunspell on first use. A failed load is retried by
// the next session.
func loadLibrary() (library, error) {
	libMu.Lock()
	defer libMu.Unlock()

	if libHun != nil {
		return libHun, nil
	}

	var (
		handle uintptr
		errs   []string
	)
	for _, name := range libraryNames {
		h, err := purego.Dlopen(name, purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if err == nil {
			handle = h
			break
		}
		errs = append(errs, err.Error())
	}
	if handle == 0 {
		return nil, fmt.Errorf("dlopen libhunspell: %s", strings.Join(errs, "; "))
	}

	l := &nativeLibrary{}
	syms := []struct {
		fptr any
		name string
	}{
		{&l.create, "Hunspell_create"},
		{&l.destroy, "Hunspell_destroy"},
		{&l.spell, "Hunspell_spell"},
		{&l.add, "Hunspell_add"},
		{&l.dicEncoding, "Hunspell_get_dic_encoding"},
	}
	for _, s := range syms {
		addr, err := purego.Dlsym(handle, s.name)
		if err != nil {
			return nil, fmt.Errorf("dlsym %s: %w", s.name, err)
		}
		purego.RegisterFunc(s.fptr, addr)
	}

	engine.Logger().Debug("libhunspell loaded")
	libHun = l
	return l, nil
}
