package normalize

import "unicode/utf8"

// Sanitize drops what must never reach a query string or the session store
// line breaks and tabs become a space so words stay apart, other C0 and C1 controls, DEL and
// invalid UTF-8 are removed, clean input is returned as is
func Sanitize(s string) string {
	clean := true
	for _, r := range s {
		if r < 0x20 || (r >= 0x7F && r <= 0x9F) || r == utf8.RuneError {
			clean = false
			break
		}
	}
	if clean {
		return s
	}

	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '\n' || r == '\r' || r == '\t':
			out = append(out, ' ')
		case r < 0x20, r >= 0x7F && r <= 0x9F:
		case r == utf8.RuneError && size == 1:
		default:
			out = append(out, s[i:i+size]...)
		}
		i += size
	}
	return string(out)
}
