// Package enginetest provides a conformance suite for engine.Session
// implementations and a small reference dictionary to run it against.
//
// Backend packages call RunBackendTests from their own tests:
//
//	func TestConformance(t *testing.T) {
//	    dir := enginetest.ReferenceDictionary(t)
//	    enginetest.RunBackendTests(t, func(t *testing.T) engine.Session {
//	        s, err := Backend{}.Open(context.Background(), engine.Config{DictDir: dir})
//	        if err != nil {
//	            t.Fatal(err)
//	        }
//	        return s
//	    })
//	}
package enginetest
