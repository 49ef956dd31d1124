//go:build darwin

package appkit

import (
	"fmt"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
	"github.com/ebitengine/purego/objc"

	"github.com/wippyai/spellbound/engine"
	"github.com/wippyai/spellbound/transcoder"
)

func init() {
	engine.Register(newBackend(&nativeBridge{}))
}

const (
	appKitPath = "/System/Library/Frameworks/AppKit.framework/AppKit"

	nsUTF8StringEncoding = 4
	nsNotFound           = int(^uint(0) >> 1)
)

var (
	selAlloc                  = objc.RegisterName("alloc")
	selInit                   = objc.RegisterName("init")
	selRelease                = objc.RegisterName("release")
	selDrain                  = objc.RegisterName("drain")
	selCount                  = objc.RegisterName("count")
	selObjectAtIndex          = objc.RegisterName("objectAtIndex:")
	selUTF8String             = objc.RegisterName("UTF8String")
	selLengthOfBytes          = objc.RegisterName("lengthOfBytesUsingEncoding:")
	selInitWithCharacters     = objc.RegisterName("initWithCharacters:length:")
	selSubstringWithRange     = objc.RegisterName("substringWithRange:")
	selSharedSpellChecker     = objc.RegisterName("sharedSpellChecker")
	selUniqueSpellDocumentTag = objc.RegisterName("uniqueSpellDocumentTag")
	selAvailableLanguages     = objc.RegisterName("availableLanguages")
	selCheckSpelling          = objc.RegisterName("checkSpellingOfString:startingAt:language:wrap:inSpellDocumentWithTag:wordCount:")
	selIgnoreWord             = objc.RegisterName("ignoreWord:inSpellDocumentWithTag:")
	selCloseSpellDocument     = objc.RegisterName("closeSpellDocumentWithTag:")
)

// nsRange mirrors NSRange.
type nsRange struct {
	Location uint
	Length   uint
}

// nativeBridge loads AppKit on first use and talks to it through purego.
type nativeBridge struct {
	mu          sync.Mutex
	loaded      bool
	spellClass  objc.Class
	stringClass objc.Class
	poolClass   objc.Class
}

func (b *nativeBridge) load() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loaded {
		return nil
	}
	if _, err := purego.Dlopen(appKitPath, purego.RTLD_NOW|purego.RTLD_GLOBAL); err != nil {
		return fmt.Errorf("dlopen AppKit: %w", err)
	}
	b.spellClass = objc.GetClass("NSSpellChecker")
	b.stringClass = objc.GetClass("NSString")
	b.poolClass = objc.GetClass("NSAutoreleasePool")
	if b.spellClass == 0 || b.stringClass == 0 || b.poolClass == 0 {
		return fmt.Errorf("AppKit classes not found")
	}
	b.loaded = true
	return nil
}

// withPool runs fn on a locked OS thread inside an autorelease pool, so
// objects autoreleased by AppKit are freed before it returns.
func (b *nativeBridge) withPool(fn func()) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	pool := objc.ID(b.poolClass).Send(selAlloc).Send(selInit)
	defer pool.Send(selDrain)
	fn()
}

func (b *nativeBridge) SharedChecker() (checker, error) {
	if err := b.load(); err != nil {
		return nil, err
	}
	var id objc.ID
	b.withPool(func() {
		id = objc.ID(b.spellClass).Send(selSharedSpellChecker)
	})
	if id == 0 {
		return nil, fmt.Errorf("sharedSpellChecker returned nil")
	}
	return &nativeChecker{bridge: b, id: id}, nil
}

func (b *nativeBridge) UniqueDocumentTag() (int, error) {
	if err := b.load(); err != nil {
		return 0, err
	}
	return objc.Send[int](objc.ID(b.spellClass), selUniqueSpellDocumentTag), nil
}

func (b *nativeBridge) NewString(text string) (nsString, error) {
	if err := b.load(); err != nil {
		return nil, err
	}
	units := transcoder.EncodeUTF16(text)
	id := objc.ID(b.stringClass).Send(selAlloc).
		Send(selInitWithCharacters, unsafe.Pointer(unsafe.SliceData(units)), uint(len(units)))
	runtime.KeepAlive(units)
	if id == 0 {
		return nil, fmt.Errorf("initWithCharacters:length: returned nil")
	}
	return &nativeString{bridge: b, id: id}, nil
}

type nativeChecker struct {
	bridge *nativeBridge
	id     objc.ID
}

func (c *nativeChecker) AvailableLanguages() []string {
	var langs []string
	c.bridge.withPool(func() {
		arr := c.id.Send(selAvailableLanguages)
		n := objc.Send[uint](arr, selCount)
		for i := uint(0); i < n; i++ {
			if s, err := goString(arr.Send(selObjectAtIndex, i)); err == nil {
				langs = append(langs, s)
			}
		}
	})
	return langs
}

func (c *nativeChecker) CheckSpelling(text nsString, start int, language nsString, tag int) engine.Range {
	var r nsRange
	c.bridge.withPool(func() {
		r = objc.Send[nsRange](c.id, selCheckSpelling,
			text.(*nativeString).id,
			start,
			language.(*nativeString).id,
			false,
			tag,
			uintptr(0),
		)
	})
	if int(r.Location) == nsNotFound {
		return engine.Range{Location: engine.NotFound}
	}
	return engine.Range{Location: int(r.Location), Length: int(r.Length)}
}

func (c *nativeChecker) IgnoreWord(word nsString, tag int) {
	c.bridge.withPool(func() {
		c.id.Send(selIgnoreWord, word.(*nativeString).id, tag)
	})
}

func (c *nativeChecker) CloseDocument(tag int) {
	c.bridge.withPool(func() {
		c.id.Send(selCloseSpellDocument, tag)
	})
}

type nativeString struct {
	bridge *nativeBridge
	id     objc.ID
}

func (s *nativeString) Substring(r engine.Range) (string, error) {
	var (
		word string
		err  error
	)
	s.bridge.withPool(func() {
		sub := objc.Send[objc.ID](s.id, selSubstringWithRange, nsRange{Location: uint(r.Location), Length: uint(r.Length)})
		word, err = goString(sub)
	})
	return word, err
}

func (s *nativeString) Release() {
	s.id.Send(selRelease)
}

// goString copies the UTF-8 bytes of an NSString.
func goString(id objc.ID) (string, error) {
	if id == 0 {
		return "", nil
	}
	n := objc.Send[uint](id, selLengthOfBytes, uint(nsUTF8StringEncoding))
	p := objc.Send[unsafe.Pointer](id, selUTF8String)
	if p == nil || n == 0 {
		return "", nil
	}
	return transcoder.DecodeUTF8(unsafe.Slice((*byte)(p), n))
}
