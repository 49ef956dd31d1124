// Package dict locates Hunspell affix/dictionary pairs and reads the stem
// list of a .dic file.
package dict

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/wippyai/spellbound/errors"
)

// DefaultDir is where system Hunspell dictionaries are installed.
const DefaultDir = "/usr/share/hunspell"

// Pair is the affix and dictionary file of one locale.
type Pair struct {
	Aff string
	Dic string
}

// Resolve returns the <lang>.aff and <lang>.dic paths in dir. Both files must
// exist. backend names the caller in the returned error.
func Resolve(backend, dir, lang string) (Pair, error) {
	if dir == "" {
		dir = DefaultDir
	}
	p := Pair{
		Aff: filepath.Join(dir, lang+".aff"),
		Dic: filepath.Join(dir, lang+".dic"),
	}
	for _, path := range []string{p.Aff, p.Dic} {
		st, err := os.Stat(path)
		if err != nil || st.IsDir() {
			return Pair{}, errors.DictionaryNotFound(backend, dir, lang)
		}
	}
	return p, nil
}

// ReadWords returns the stems listed in a .dic file. The leading entry count
// is skipped, affix flags after an unescaped '/' and morphological fields
// after a tab are dropped. Lines starting with '#' or '/' are comments.
func ReadWords(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var words []string
	first := true
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if first {
			first = false
			line = strings.TrimPrefix(line, "\ufeff")
			if _, err := strconv.Atoi(strings.TrimSpace(line)); err == nil {
				continue
			}
		}
		if w := stem(line); w != "" {
			words = append(words, w)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(errors.PhaseSetup, errors.KindInstantiation, err, "read dictionary")
	}
	return words, nil
}

func stem(line string) string {
	if line == "" || line[0] == '#' || line[0] == '/' {
		return ""
	}
	if i := strings.IndexByte(line, '\t'); i >= 0 {
		line = line[:i]
	}

	var b strings.Builder
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line) && line[i+1] == '/':
			b.WriteByte('/')
			i++
		case c == '/':
			return strings.TrimSpace(b.String())
		case c == ' ' && b.Len() > 0 && isField(line[i+1:]):
			return b.String()
		default:
			b.WriteByte(c)
		}
	}
	return strings.TrimSpace(b.String())
}

// isField reports whether s starts with a two-letter morphological field
// such as "po:noun".
func isField(s string) bool {
	s = strings.TrimLeft(s, " ")
	return len(s) >= 3 && s[2] == ':' && isLower(s[0]) && isLower(s[1])
}

func isLower(c byte) bool {
	return c >= 'a' && c <= 'z'
}
