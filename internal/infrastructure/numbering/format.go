// Package numbering issues invoice numbers that never repeat or go
// backward within a branch.
package numbering

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultFormat renders INV-000001, INV-000002, ...
const DefaultFormat = "INV-{SEQ6}"

var seqPadRe = regexp.MustCompile(`\{SEQ(\d+)\}`)

// Format renders a number template. Supported tokens: {YYYY} {YY} {MM} {DD}
// {SEQ} and {SEQn} for a sequence zero-padded to n digits.
func Format(template string, issuedAt time.Time, seq int64) (string, error) {
	if template == "" {
		return "", fmt.Errorf("invoice number template is empty")
	}
	if seq <= 0 {
		return "", fmt.Errorf("invalid invoice sequence: %d", seq)
	}

	out := template
	out = strings.ReplaceAll(out, "{YYYY}", issuedAt.Format("2006"))
	out = strings.ReplaceAll(out, "{YY}", issuedAt.Format("06"))
	out = strings.ReplaceAll(out, "{MM}", issuedAt.Format("01"))
	out = strings.ReplaceAll(out, "{DD}", issuedAt.Format("02"))
	out = strings.ReplaceAll(out, "{SEQ}", strconv.FormatInt(seq, 10))

	out = seqPadRe.ReplaceAllStringFunc(out, func(m string) string {
		match := seqPadRe.FindStringSubmatch(m)
		width, err := strconv.Atoi(match[1])
		if err != nil || width <= 0 {
			return m
		}
		return fmt.Sprintf("%0*d", width, seq)
	})

	if strings.ContainsAny(out, "{}") {
		return "", fmt.Errorf("unresolved token in invoice number format: %s", out)
	}
	return out, nil
}

// ValidateFormat checks that template renders and carries a sequence token
func ValidateFormat(template string) error {
	if !strings.Contains(template, "{SEQ") {
		return fmt.Errorf("invoice number format %q has no {SEQ} token", template)
	}
	_, err := Format(template, time.Now(), 1)
	return err
}
