package pdf

import "strings"

// Substitutions applied when no Unicode-capable font is available. The
// core PDF fonts cover little beyond ASCII, so German umlauts and
// typographic punctuation get deterministic ASCII stand-ins.
var translitTable = map[rune]string{
	'ä': "ae",
	'ö': "oe",
	'ü': "ue",
	'Ä': "Ae",
	'Ö': "Oe",
	'Ü': "Ue",
	'ß': "ss",
	'–': "-",
	'—': "-",
	'„': `"`,
	'“': `"`,
	'”': `"`,
	'‚': "'",
	'’': "'",
	'‘': "'",
}

// Transliterate maps text onto the ASCII subset the core fonts render.
// Runes without a substitution fall back to '?'. The mapping is total
// and deterministic; it never fails.
func Transliterate(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r < 0x80:
			b.WriteRune(r)
		default:
			if sub, ok := translitTable[r]; ok {
				b.WriteString(sub)
			} else {
				b.WriteByte('?')
			}
		}
	}
	return b.String()
}
