package sqlutil

import "strings"

// firstStatementReturnsRows reports whether the first statement of script
// produces a row set: a query, or a data change statement carrying a
// RETURNING or OUTPUT clause. Comments and quoted text are skipped.
func firstStatementReturnsRows(script string) bool {
	sc := scriptScanner{src: script}

	switch sc.nextWord() {
	case "SELECT", "WITH", "VALUES", "TABLE", "SHOW", "EXPLAIN", "DESCRIBE", "DESC":
		return true
	case "INSERT", "UPDATE", "DELETE", "MERGE", "REPLACE":
		for w := sc.nextWord(); w != ""; w = sc.nextWord() {
			if w == "RETURNING" || w == "OUTPUT" {
				return true
			}
		}
	}
	return false
}

// scriptScanner walks the words of the first statement of a script.
type scriptScanner struct {
	src string
	pos int
}

// nextWord returns the next bare word upper-cased, or "" once the first
// statement ends.
func (sc *scriptScanner) nextWord() string {
	for sc.pos < len(sc.src) {
		c := sc.src[sc.pos]
		switch {
		case c == ';':
			sc.pos = len(sc.src)
			return ""
		case c == '-' && strings.HasPrefix(sc.src[sc.pos:], "--"):
			sc.skipPast("\n")
		case c == '/' && strings.HasPrefix(sc.src[sc.pos:], "/*"):
			sc.pos += 2
			sc.skipPast("*/")
		case c == '\'' || c == '"' || c == '`':
			sc.pos++
			sc.skipPast(string(c))
		case c == '$':
			sc.skipDollarQuote()
		case isWordStart(c):
			start := sc.pos
			for sc.pos < len(sc.src) && isWordPart(sc.src[sc.pos]) {
				sc.pos++
			}
			return strings.ToUpper(sc.src[start:sc.pos])
		default:
			sc.pos++
		}
	}
	return ""
}

// skipPast moves past the next occurrence of end, or to the end of input.
func (sc *scriptScanner) skipPast(end string) {
	i := strings.Index(sc.src[sc.pos:], end)
	if i < 0 {
		sc.pos = len(sc.src)
		return
	}
	sc.pos += i + len(end)
}

// skipDollarQuote skips a $tag$...$tag$ body. A lone $ or a $1 placeholder is
// skipped as a single character.
func (sc *scriptScanner) skipDollarQuote() {
	end := strings.IndexByte(sc.src[sc.pos+1:], '$')
	if end < 0 {
		sc.pos++
		return
	}
	tag := sc.src[sc.pos : sc.pos+end+2]
	for i := 1; i < len(tag)-1; i++ {
		if !isWordPart(tag[i]) || (i == 1 && !isWordStart(tag[i])) {
			sc.pos++
			return
		}
	}
	sc.pos += len(tag)
	sc.skipPast(tag)
}

func isWordStart(c byte) bool {
	return c == '_' || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isWordPart(c byte) bool {
	return isWordStart(c) || ('0' <= c && c <= '9') || c == '$'
}
