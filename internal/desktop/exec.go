package desktop

import "strings"

// fieldCodes are the single-letter Exec field codes defined by the desktop
// entry specification. They are substituted by a full desktop environment;
// the launcher drops them instead.
const fieldCodes = "fFuUdDnNickvm"

func isFieldCode(c byte) bool {
	return strings.IndexByte(fieldCodes, c) >= 0
}

// CleanExec produces the human-readable form of a raw Exec line: field
// codes are removed, %% collapses to a single %, and any other %x sequence
// is kept verbatim. The result is for display only; use SplitExec to build
// the argv actually executed.
func CleanExec(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '%' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(raw) {
			break // trailing lone %
		}
		next := raw[i]
		if next == '%' {
			b.WriteByte('%')
		} else if !isFieldCode(next) {
			b.WriteByte('%')
			b.WriteByte(next)
		}
	}

	return strings.TrimSpace(b.String())
}

// SplitExec tokenizes a raw Exec line into an argv per the desktop entry
// quoting rules: arguments are separated by unquoted whitespace, double
// quotes group an argument, and a backslash escapes the next character
// inside quotes. Field-code tokens are dropped; %% yields a literal %.
//
// This is deliberately separate from CleanExec: a display string may keep
// odd spacing, but the argv must be an exact, safely-split token vector.
func SplitExec(raw string) []string {
	var argv []string
	var tok strings.Builder
	inQuotes := false
	haveTok := false

	flush := func() {
		if !haveTok {
			return
		}
		t := tok.String()
		tok.Reset()
		haveTok = false
		if isFieldCodeToken(t) {
			return
		}
		argv = append(argv, strings.ReplaceAll(t, "%%", "%"))
	}

	for i := 0; i < len(raw); i++ {
		c := raw[i]
		switch {
		case inQuotes:
			switch c {
			case '\\':
				if i+1 < len(raw) {
					i++
					tok.WriteByte(raw[i])
				}
			case '"':
				inQuotes = false
			default:
				tok.WriteByte(c)
			}
		case c == '"':
			inQuotes = true
			haveTok = true
		case c == ' ' || c == '\t':
			flush()
		default:
			tok.WriteByte(c)
			haveTok = true
		}
	}
	flush()

	return argv
}

// isFieldCodeToken reports whether an entire token is a field code (%u,
// %F, ...). Tokens merely containing a percent are not field codes.
func isFieldCodeToken(t string) bool {
	return len(t) == 2 && t[0] == '%' && t[1] != '%' && isFieldCode(t[1])
}
