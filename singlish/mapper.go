package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Independent vowel for every dependent sign
var signToVowel = map[rune]rune{
	'\u0dcf': '\u0d86', // ා ආ
	'\u0dd0': '\u0d87', // ැ ඇ
	'\u0dd1': '\u0d88', // ෑ ඈ
	'\u0dd2': '\u0d89', // ි ඉ
	'\u0dd3': '\u0d8a', // ී ඊ
	'\u0dd4': '\u0d8b', // ු උ
	'\u0dd6': '\u0d8c', // ූ ඌ
	'\u0dd8': '\u0d8d', // ෘ ඍ
	'\u0dd9': '\u0d91', // ෙ එ
	'\u0dda': '\u0d92', // ේ ඒ
	'\u0ddb': '\u0d93', // ෛ ඓ
	'\u0ddc': '\u0d94', // ො ඔ
	'\u0ddd': '\u0d95', // ෝ ඕ
	'\u0dde': '\u0d96', // ෞ ඖ
	'\u0ddf': '\u0d8f', // ෟ ඏ
	'\u0df2': '\u0d8e', // ෲ ඎ
	'\u0df3': '\u0d90', // ෳ ඐ
}

const viramaRune = '\u0dca'

// Mapper turns phonetic tokens into Sinhala
type Mapper struct {
	rules *RuleTable
}

// NewMapper for a rule table
func NewMapper(rules *RuleTable) *Mapper {
	return &Mapper{rules}
}

type composer struct {
	out strings.Builder

	// Last emitted letter is a consonant without vowel sign or virama
	pending bool

	// Last emitted letter can carry anusvara or visarga
	hasBase bool

	lastConsonant string
}

func (c *composer) closeConsonant() {
	if c.pending {
		c.out.WriteString(VIRAMA)
		c.pending = false
	}
}

func (c *composer) add(rule Rule) {
	switch rule.Type {
	case SINGLISH_SYMBOL_VOWEL:
		if c.pending {
			c.out.WriteString(rule.Value2)
			c.pending = false
		} else {
			c.out.WriteString(rule.Value1)
		}
		c.hasBase = true
		c.lastConsonant = ""

	case SINGLISH_SYMBOL_CONSONANT:
		c.closeConsonant()
		c.out.WriteString(rule.Value1)
		c.pending = true
		c.hasBase = true
		c.lastConsonant = rule.Value1

	case SINGLISH_SYMBOL_CONJUNCT:
		if c.pending {
			// The consonant still takes the following vowel
			c.out.WriteString(rule.Value2)
		} else {
			c.out.WriteString(rule.Value1)
			c.pending = true
		}
		c.hasBase = true
		c.lastConsonant = rule.Value1

	case SINGLISH_SYMBOL_ANUSVARA, SINGLISH_SYMBOL_VISARGA:
		if !c.hasBase {
			c.out.WriteString(DEFAULT_CARRIER)
		}
		c.out.WriteString(rule.Value1)
		c.pending = false
		c.hasBase = false
		c.lastConsonant = ""
	}
}

func (c *composer) addVerbatim(r rune) {
	c.closeConsonant()
	c.out.WriteRune(r)
	c.hasBase = false
	c.lastConsonant = ""
}

// Map a phonetic token. Characters no rule covers are kept as they are.
func (mapper *Mapper) Map(word string) string {
	var start time.Time
	if LOG_TIME_TAKEN {
		start = time.Now()
	}

	runes := []rune(word)
	c := &composer{}

	i := 0
	for i < len(runes) {
		state := matchState{
			position:       i,
			length:         len(runes),
			afterConsonant: c.pending,
			lastConsonant:  c.lastConsonant,
		}

		rule, length, ok := mapper.rules.match(runes, state)

		if !ok && unicode.IsUpper(runes[i]) {
			// Capitals without a rule of their own read as lower case
			lowered := make([]rune, len(runes))
			copy(lowered, runes)
			lowered[i] = unicode.ToLower(runes[i])
			rule, length, ok = mapper.rules.match(lowered, state)
		}

		if !ok {
			tracer().Debugf("no rule for '%c' in %q", runes[i], word)
			c.addVerbatim(runes[i])
			i++
			continue
		}

		c.add(rule)
		i += length
	}

	c.closeConsonant()

	result := repairOrphanSigns(norm.NFC.String(c.out.String()))

	if LOG_TIME_TAKEN {
		tracer().Infof("mapping %q took %v", word, time.Since(start))
	}

	return result
}

// Dependent signs must follow a consonant. An orphan vowel sign becomes
// its independent vowel, an orphan virama is dropped and an orphan
// anusvara or visarga gets the default carrier.
func repairOrphanSigns(input string) string {
	var (
		out      strings.Builder
		prev     rune
		repaired bool
	)

	for _, r := range input {
		switch {
		case r == viramaRune:
			if !isSinhalaConsonant(prev) {
				repaired = true
				continue
			}

		case isSinhalaSign(r):
			if !isSinhalaConsonant(prev) {
				if vowel, ok := signToVowel[r]; ok {
					r = vowel
					repaired = true
				}
			}

		case isSinhalaModifier(r):
			if !isSinhalaConsonant(prev) && !isSinhalaVowel(prev) && !isSinhalaSign(prev) {
				out.WriteString(DEFAULT_CARRIER)
				repaired = true
			}
		}

		out.WriteRune(r)
		prev = r
	}

	if !repaired {
		return input
	}

	tracer().Errorf("repaired orphan signs in %q", input)
	return out.String()
}
