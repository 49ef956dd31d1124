// Package resource provides ownership wrappers for native engine resources.
//
// The engines behind spellbound hand out resources with very different
// lifetimes: an opaque Hunhandle pointer, a reference-counted COM interface,
// an NSSpellChecker document tag, an NSString built for a single check. None
// of them may be released twice, and none may be released while a call is
// still using them.
//
// # Owned
//
// Owned wraps one resource together with its release function:
//
//	h := resource.NewOwned(handle, func(h uintptr) error {
//	    lib.Destroy(h)
//	    return nil
//	})
//
//	// Calls go through With and are serialized with Release
//	err := h.With(func(h uintptr) error {
//	    ok = lib.Spell(h, word) != 0
//	    return nil
//	})
//
//	// First call releases, later calls are no-ops
//	h.Release()
//
// After Release, With returns ErrReleased without running the callback.
//
// # Table
//
// Table maps integer handles to live values and reports lifecycle events:
//
//	table := resource.NewTable()
//
//	h := table.Insert("hunspell", info)
//	table.Each(func(h resource.Handle, kind string, v any) bool {
//	    fmt.Println(h, kind, v)
//	    return true
//	})
//	value, ok := table.Remove(h)
//
// Register observers to track lifecycle events:
//
//	stop := table.Subscribe(resource.ObserverFunc(func(e resource.Event) {
//	    log.Printf("%s session %d %s", e.Kind, e.Handle, e.Type)
//	}))
//	defer stop()
//
// Handle 0 is reserved and always invalid. Freed handles are reused.
package resource
