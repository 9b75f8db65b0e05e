package heist

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// Pattern is an ordered run of digits, 1..Capacity long.
type Pattern []int

// Reversed returns a reversed copy of p.
func (p Pattern) Reversed() Pattern {
	out := make(Pattern, len(p))
	for i, d := range p {
		out[len(p)-1-i] = d
	}
	return out
}

// String renders the pattern as "[1, 2, 3]".
func (p Pattern) String() string {
	parts := make([]string, len(p))
	for i, d := range p {
		parts[i] = strconv.Itoa(d)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// ParsePattern parses free text such as "1, 2 3" into a Pattern.
// Tokens are separated by commas and/or whitespace. Every token must be an
// integer 0..9, and the result must hold 1..Capacity digits.
func ParsePattern(text string) (Pattern, error) {
	tokens := strings.FieldsFunc(text, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	if len(tokens) == 0 {
		return nil, fmt.Errorf("%w: empty", ErrInvalidPattern)
	}
	if len(tokens) > Capacity {
		return nil, fmt.Errorf("%w: %d digits exceeds capacity %d", ErrInvalidPattern, len(tokens), Capacity)
	}

	p := make(Pattern, 0, len(tokens))
	for _, tok := range tokens {
		d, err := strconv.Atoi(tok)
		if err != nil || d < 0 || d > 9 {
			return nil, fmt.Errorf("%w: bad token %q", ErrInvalidPattern, tok)
		}
		p = append(p, d)
	}
	return p, nil
}
