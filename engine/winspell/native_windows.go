//go:build windows

package winspell

import (
	"sync"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"

	"github.com/wippyai/spellbound/engine"
)

func init() {
	engine.Register(Backend{com: &nativeCOM{}})
}

var (
	clsidSpellCheckerFactory = ole.NewGUID("{7AB36653-1796-484B-BDFA-E74F1DB7C1DC}")
	iidISpellCheckerFactory  = ole.NewGUID("{8E018A9D-2415-4677-BF08-794EA61F94BB}")
)

const (
	sOK    = 0
	sFalse = 1
)

// nativeCOM initializes COM once per process. The multithreaded apartment
// it joins is shared by every OS thread the Go scheduler uses.
type nativeCOM struct {
	mu    sync.Mutex
	ready bool
}

func (c *nativeCOM) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.ready {
		return nil
	}
	if err := ole.CoInitializeEx(0, ole.COINIT_MULTITHREADED); err != nil {
		// S_FALSE: this thread already joined the apartment.
		if oleErr, ok := err.(*ole.OleError); !ok || oleErr.Code() != sFalse {
			return err
		}
	}
	c.ready = true
	engine.Logger().Debug("COM initialized")
	return nil
}

func (c *nativeCOM) NewFactory() (factory, error) {
	unk, err := ole.CreateInstance(clsidSpellCheckerFactory, iidISpellCheckerFactory)
	if err != nil {
		return nil, err
	}
	return (*iSpellCheckerFactory)(unsafe.Pointer(unk)), nil
}

func hresult(hr uintptr) error {
	if hr == sOK {
		return nil
	}
	return ole.NewError(hr)
}

func release(p unsafe.Pointer) {
	(*ole.IUnknown)(p).Release()
}

type iSpellCheckerFactory struct {
	ole.IUnknown
}

type iSpellCheckerFactoryVtbl struct {
	ole.IUnknownVtbl
	GetSupportedLanguages uintptr
	IsSupported           uintptr
	CreateSpellChecker    uintptr
}

func (f *iSpellCheckerFactory) vtbl() *iSpellCheckerFactoryVtbl {
	return (*iSpellCheckerFactoryVtbl)(unsafe.Pointer(f.RawVTable))
}

func (f *iSpellCheckerFactory) IsSupported(language []uint16) (bool, error) {
	var supported int32
	hr, _, _ := syscall.SyscallN(f.vtbl().IsSupported,
		uintptr(unsafe.Pointer(f)),
		uintptr(unsafe.Pointer(&language[0])),
		uintptr(unsafe.Pointer(&supported)))
	if err := hresult(hr); err != nil {
		return false, err
	}
	return supported != 0, nil
}

func (f *iSpellCheckerFactory) CreateSpellChecker(language []uint16) (spellChecker, error) {
	var sc *iSpellChecker
	hr, _, _ := syscall.SyscallN(f.vtbl().CreateSpellChecker,
		uintptr(unsafe.Pointer(f)),
		uintptr(unsafe.Pointer(&language[0])),
		uintptr(unsafe.Pointer(&sc)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return sc, nil
}

func (f *iSpellCheckerFactory) Release() {
	release(unsafe.Pointer(f))
}

type iSpellChecker struct {
	ole.IUnknown
}

type iSpellCheckerVtbl struct {
	ole.IUnknownVtbl
	GetLanguageTag            uintptr
	Check                     uintptr
	Suggest                   uintptr
	Add                       uintptr
	Ignore                    uintptr
	AutoCorrect               uintptr
	GetOptionValue            uintptr
	GetOptionIds              uintptr
	GetID                     uintptr
	GetLocalizedName          uintptr
	AddSpellCheckerChanged    uintptr
	RemoveSpellCheckerChanged uintptr
	GetOptionDescription      uintptr
	ComprehensiveCheck        uintptr
}

func (c *iSpellChecker) vtbl() *iSpellCheckerVtbl {
	return (*iSpellCheckerVtbl)(unsafe.Pointer(c.RawVTable))
}

func (c *iSpellChecker) ComprehensiveCheck(text []uint16) (engine.Enumerator, error) {
	var enum *iEnumSpellingError
	hr, _, _ := syscall.SyscallN(c.vtbl().ComprehensiveCheck,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&text[0])),
		uintptr(unsafe.Pointer(&enum)))
	if err := hresult(hr); err != nil {
		return nil, err
	}
	return &errorEnum{enum: enum}, nil
}

func (c *iSpellChecker) Ignore(word []uint16) error {
	hr, _, _ := syscall.SyscallN(c.vtbl().Ignore,
		uintptr(unsafe.Pointer(c)),
		uintptr(unsafe.Pointer(&word[0])))
	return hresult(hr)
}

func (c *iSpellChecker) Release() {
	release(unsafe.Pointer(c))
}

type iEnumSpellingError struct {
	ole.IUnknown
}

type iEnumSpellingErrorVtbl struct {
	ole.IUnknownVtbl
	Next uintptr
}

type iSpellingError struct {
	ole.IUnknown
}

type iSpellingErrorVtbl struct {
	ole.IUnknownVtbl
	GetStartIndex       uintptr
	GetLength           uintptr
	GetCorrectiveAction uintptr
	GetReplacement      uintptr
}

// errorEnum adapts IEnumSpellingError to engine.Enumerator.
type errorEnum struct {
	enum *iEnumSpellingError
}

func (e *errorEnum) Next() (engine.Span, bool, error) {
	var se *iSpellingError
	vt := (*iEnumSpellingErrorVtbl)(unsafe.Pointer(e.enum.RawVTable))
	hr, _, _ := syscall.SyscallN(vt.Next,
		uintptr(unsafe.Pointer(e.enum)),
		uintptr(unsafe.Pointer(&se)))
	switch hr {
	case sFalse:
		return engine.Span{}, false, nil
	case sOK:
	default:
		return engine.Span{}, false, ole.NewError(hr)
	}
	defer release(unsafe.Pointer(se))

	var start, length uint32
	ev := (*iSpellingErrorVtbl)(unsafe.Pointer(se.RawVTable))
	if hr, _, _ := syscall.SyscallN(ev.GetStartIndex,
		uintptr(unsafe.Pointer(se)),
		uintptr(unsafe.Pointer(&start))); hr != sOK {
		return engine.Span{}, false, ole.NewError(hr)
	}
	if hr, _, _ := syscall.SyscallN(ev.GetLength,
		uintptr(unsafe.Pointer(se)),
		uintptr(unsafe.Pointer(&length))); hr != sOK {
		return engine.Span{}, false, ole.NewError(hr)
	}
	return engine.Span{Start: start, Length: length}, true, nil
}

func (e *errorEnum) Close() error {
	release(unsafe.Pointer(e.enum))
	return nil
}
