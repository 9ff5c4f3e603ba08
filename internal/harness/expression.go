package harness

import (
	"fmt"
	"strings"
)

// exprKeywords are identifiers expr-lang gives a meaning of its own.
var exprKeywords = map[string]bool{
	"true": true, "false": true, "nil": true,
	"and": true, "or": true, "not": true, "in": true,
	"matches": true, "contains": true, "startsWith": true, "endsWith": true,
	"let": true, "if": true, "else": true,
}

// bindPaths replaces each variable path in expression with a generated
// identifier and returns the rewritten expression with the environment that
// binds those identifiers. String literals, numbers, keywords, function
// names and members of other values are copied as they are.
//
// Paths are made of identifiers and numeric indexes joined by dots, so
// "Project.Tags.0" is one path while "A-B" is two paths and a subtraction.
func (r *Resolver) bindPaths(expression string) (string, map[string]any, error) {
	src := []rune(expression)
	env := make(map[string]any)
	names := make(map[string]string)

	var out strings.Builder
	for i := 0; i < len(src); {
		c := src[i]

		switch {
		case c == '"' || c == '\'' || c == '`':
			end := skipString(src, i)
			out.WriteString(string(src[i:end]))
			i = end

		case isDigit(c):
			end := skipNumber(src, i)
			out.WriteString(string(src[i:end]))
			i = end

		case isIdentStart(c):
			start := i
			end := scanPath(src, start)
			path := string(src[start:end])
			i = end

			if exprKeywords[path] || followsDot(src, start) || precedesCall(src, end) {
				out.WriteString(path)
				continue
			}

			name, ok := names[path]
			if !ok {
				value, found := r.lookup(path)
				if !found {
					return "", nil, fmt.Errorf("unknown variable %s", path)
				}
				name = fmt.Sprintf("v%d", len(names))
				names[path] = name
				env[name] = value
			}
			out.WriteString(name)

		default:
			out.WriteRune(c)
			i++
		}
	}

	return out.String(), env, nil
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isIdentStart(r rune) bool {
	return r == '_' || r == '$' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isIdentRune(r rune) bool {
	return isIdentStart(r) || isDigit(r)
}

// skipString returns the index just past the string literal opened at i.
func skipString(src []rune, i int) int {
	quote := src[i]
	for j := i + 1; j < len(src); j++ {
		switch {
		case src[j] == '\\' && quote != '`':
			j++
		case src[j] == quote:
			return j + 1
		}
	}
	return len(src)
}

// skipNumber returns the index just past the number literal at i, including
// fractions, exponents and hex or underscore forms.
func skipNumber(src []rune, i int) int {
	j := i
	for j < len(src) {
		switch {
		case isIdentRune(src[j]):
			j++
		case src[j] == '.' && j+1 < len(src) && isDigit(src[j+1]):
			j++
		default:
			return j
		}
	}
	return j
}

// scanPath returns the index just past the dotted path starting at i.
// "?." ends a path.
func scanPath(src []rune, i int) int {
	j := i
	for j < len(src) && isIdentRune(src[j]) {
		j++
	}
	for j+1 < len(src) && src[j] == '.' && isIdentRune(src[j+1]) {
		j++
		for j < len(src) && isIdentRune(src[j]) {
			j++
		}
	}
	return j
}

// followsDot reports whether the token at i is a member access such as the
// "Owner" in "user?.Owner" or "upper(x).Owner".
func followsDot(src []rune, i int) bool {
	for j := i - 1; j >= 0; j-- {
		if src[j] == ' ' || src[j] == '\t' {
			continue
		}
		return src[j] == '.'
	}
	return false
}

func precedesCall(src []rune, i int) bool {
	for j := i; j < len(src); j++ {
		if src[j] == ' ' || src[j] == '\t' {
			continue
		}
		return src[j] == '('
	}
	return false
}
