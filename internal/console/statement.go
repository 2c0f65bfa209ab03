package console

import (
	"errors"
	"strings"
	"unicode"
)

var (
	ErrEmptyQuery   = errors.New("query is empty")
	ErrNotReadOnly  = errors.New("only a single SELECT, WITH, EXPLAIN or VALUES statement is allowed")
	ErrUnterminated = errors.New("query has an unterminated string, identifier or comment")
)

var (
	allowedStatements  = []string{"SELECT", "WITH", "EXPLAIN", "VALUES"}
	errMultipleQueries = errors.New("multiple statements")
)

// Validate checks that raw holds exactly one allowed statement and returns it
// without surrounding whitespace and trailing semicolons.
func Validate(raw string) (string, error) {
	stmt, err := singleStatement(raw)
	if err != nil {
		if errors.Is(err, errMultipleQueries) {
			return "", ErrNotReadOnly
		}
		return "", err
	}
	if stmt == "" {
		return "", ErrEmptyQuery
	}
	keyword := strings.ToUpper(leadingKeyword(stmt))
	for _, allowed := range allowedStatements {
		if keyword == allowed {
			return stmt, nil
		}
	}
	return "", ErrNotReadOnly
}

// singleStatement scans raw with the PostgreSQL lexical rules for quoting and
// comments and fails when a second statement follows the first semicolon.
func singleStatement(raw string) (string, error) {
	s := raw
	end := -1
	for i := 0; i < len(s); {
		switch {
		case s[i] == '\'':
			j, ok := skipQuoted(s, i, '\'')
			if !ok {
				return "", ErrUnterminated
			}
			i = j
		case s[i] == '"':
			j, ok := skipQuoted(s, i, '"')
			if !ok {
				return "", ErrUnterminated
			}
			i = j
		case strings.HasPrefix(s[i:], "--"):
			j := strings.IndexByte(s[i:], '\n')
			if j < 0 {
				i = len(s)
			} else {
				i += j + 1
			}
		case strings.HasPrefix(s[i:], "/*"):
			j, ok := skipBlockComment(s, i)
			if !ok {
				return "", ErrUnterminated
			}
			i = j
		case s[i] == '$':
			if tag, ok := dollarTag(s[i:]); ok {
				j := strings.Index(s[i+len(tag):], tag)
				if j < 0 {
					return "", ErrUnterminated
				}
				i += len(tag) + j + len(tag)
				continue
			}
			i++
		case s[i] == ';':
			if end < 0 {
				end = i
			}
			i++
		default:
			if end >= 0 && !unicode.IsSpace(rune(s[i])) {
				return "", errMultipleQueries
			}
			i++
		}
	}
	if end >= 0 {
		s = s[:end]
	}
	return strings.TrimSpace(s), nil
}

// skipQuoted returns the index after the closing quote; doubled quotes are escapes.
func skipQuoted(s string, start int, quote byte) (int, bool) {
	for i := start + 1; i < len(s); i++ {
		if s[i] != quote {
			continue
		}
		if i+1 < len(s) && s[i+1] == quote {
			i++
			continue
		}
		return i + 1, true
	}
	return 0, false
}

// skipBlockComment handles nested block comments.
func skipBlockComment(s string, start int) (int, bool) {
	depth := 0
	for i := start; i < len(s)-1; {
		switch {
		case s[i] == '/' && s[i+1] == '*':
			depth++
			i += 2
		case s[i] == '*' && s[i+1] == '/':
			depth--
			i += 2
			if depth == 0 {
				return i, true
			}
		default:
			i++
		}
	}
	return 0, false
}

// dollarTag recognises $$ and $tag$ openers of dollar-quoted strings.
func dollarTag(s string) (string, bool) {
	for i := 1; i < len(s); i++ {
		c := s[i]
		if c == '$' {
			return s[:i+1], true
		}
		if !(c == '_' || unicode.IsLetter(rune(c)) || (i > 1 && unicode.IsDigit(rune(c)))) {
			return "", false
		}
	}
	return "", false
}

// leadingKeyword skips whitespace, comments and opening parentheses.
func leadingKeyword(stmt string) string {
	s := stmt
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		switch {
		case strings.HasPrefix(s, "("):
			s = s[1:]
		case strings.HasPrefix(s, "--"):
			j := strings.IndexByte(s, '\n')
			if j < 0 {
				return ""
			}
			s = s[j+1:]
		case strings.HasPrefix(s, "/*"):
			j, ok := skipBlockComment(s, 0)
			if !ok {
				return ""
			}
			s = s[j:]
		default:
			end := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsLetter(r) })
			if end < 0 {
				return s
			}
			return s[:end]
		}
	}
}
