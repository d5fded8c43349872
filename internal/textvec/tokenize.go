// MovieBot - Hybrid Movie Recommendation Service
// Copyright 2026 MovieBot Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/moviebot-dev/moviebot

package textvec

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+`)

// minTokenLen drops single letters and digits.
const minTokenLen = 2

// Fold lowercases s and strips combining marks ("Ação" -> "acao").
func Fold(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// Tokenize splits text into folded terms with stopwords removed.
// The result is nil for blank input.
func Tokenize(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	raw := tokenPattern.FindAllString(Fold(text), -1)
	tokens := raw[:0]
	for _, tok := range raw {
		if len(tok) < minTokenLen {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}
	if len(tokens) == 0 {
		return nil
	}
	return tokens
}

// IsStopword reports whether the folded term is ignored by Tokenize.
func IsStopword(term string) bool {
	_, ok := stopwords[Fold(term)]
	return ok
}
