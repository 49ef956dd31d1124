// Package transcoder converts text between Go strings and the native string
// representations of the spell-checking engines.
//
// Every backend speaks a different encoding:
//
//	Backend     Native representation           Offsets measured in
//	──────────────────────────────────────────────────────────────────
//	appkit      NSString                        UTF-16 code units
//	winspell    LPCWSTR (NUL-terminated)        UTF-16 code units
//	hunspell    char* in the dictionary charset bytes (whole tokens only)
//	wordlist    Go string                       bytes
//
// # Strictness
//
// Encoding Go text for an engine is lenient where the engine is: invalid
// UTF-8 in a Go string becomes U+FFFD. Decoding engine output is strict.
// An unpaired surrogate or malformed UTF-8 coming back from an engine means
// the engine broke its own encoding contract, and the decoders report
// errors.KindInvalidUTF16 / errors.KindInvalidUTF8 instead of substituting.
//
// # Key Types
//
//	UnitIndex   - maps UTF-16 unit offsets back to byte offsets in the source text
//	Charset     - converts words to a Hunspell dictionary's declared charset
package transcoder
