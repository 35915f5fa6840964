package core

import "strings"

// Expand rewrites a single token: a leading tilde becomes the value of HOME,
// then every environment variable reference is replaced by its value. Tokens
// produced by expansion are never re-split, so a value containing spaces
// stays one token. Expansion cannot fail; text that does not form a valid
// reference is passed through untouched.
func Expand(env *Env, token string) string {
	return expandVars(env, expandTilde(env, token))
}

// expandTilde handles a tilde in the leading position only. A bare "~" and a
// "~/" prefix expand to HOME; "~user" forms are left alone, as is the whole
// token when HOME is unset or empty.
func expandTilde(env *Env, token string) string {
	if !strings.HasPrefix(token, "~") {
		return token
	}
	rest := token[1:]
	if rest != "" && rest[0] != '/' {
		return token
	}
	home := env.Getenv(EnvHome)
	if home == "" {
		return token
	}
	return home + rest
}

// expandVars substitutes $NAME and ${NAME} references in a single pass over
// the token. A reference to an unset variable yields the empty string. A "$"
// that is not followed by a well formed name, and a "${" with no closing
// brace, are literal text. Values are never rescanned, so a variable whose
// value contains "$" cannot trigger further substitution.
func expandVars(env *Env, token string) string {
	if !strings.ContainsRune(token, '$') {
		return token
	}

	var sb strings.Builder
	for i := 0; i < len(token); i++ {
		c := token[i]
		if c != '$' || i+1 == len(token) {
			sb.WriteByte(c)
			continue
		}

		if token[i+1] == '{' {
			end := strings.IndexByte(token[i+2:], '}')
			if end < 0 || !isName(token[i+2:i+2+end]) {
				sb.WriteByte(c)
				continue
			}
			sb.WriteString(env.Getenv(token[i+2 : i+2+end]))
			i += 2 + end
			continue
		}

		j := i + 1
		for j < len(token) && isNameByte(token[j]) {
			j++
		}
		if !isName(token[i+1 : j]) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteString(env.Getenv(token[i+1 : j]))
		i = j - 1
	}
	return sb.String()
}

// isName reports whether s is a valid variable name: one or more letters,
// digits, or underscores, not starting with a digit.
func isName(s string) bool {
	if s == "" || isDigit(s[0]) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isNameByte(s[i]) {
			return false
		}
	}
	return true
}

func isNameByte(c byte) bool {
	return c == '_' || isDigit(c) || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}
