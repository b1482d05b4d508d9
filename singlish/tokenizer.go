package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

/* Type of tokens */
const SINGLISH_TOKEN_WORD = 1        // Letter run, not classified yet
const SINGLISH_TOKEN_NUMERIC = 2     // 750ml, 25/12/2025, $20
const SINGLISH_TOKEN_PUNCTUATION = 3 // Anything else
const SINGLISH_TOKEN_WHITESPACE = 4  // Spaces, tabs and newlines
const SINGLISH_TOKEN_QUOTED = 5      // "..." with Inner tokens

// Span is a byte range [Start, End) of the buffer
type Span struct {
	Start int
	End   int
}

// Token is a piece of the input buffer. Tokens are values and are never
// changed once the tokenizer made them.
type Token struct {
	Kind int
	Raw  string
	Span Span

	// Tokens between the quote marks of a SINGLISH_TOKEN_QUOTED
	Inner []Token
}

var closingQuotes = map[rune]rune{
	'"': '"',
	'“': '”',
	'‘': '’',
}

const numericSeparators = "/.:,-"

const currencySymbols = "$€£¥₹₨"

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsMark(r) || r == '\u200d' || r == '\u200c'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isCurrencySymbol(r rune) bool {
	return strings.ContainsRune(currencySymbols, r)
}

func runeAt(buffer string, i int, end int) (rune, int) {
	if i >= end {
		return utf8.RuneError, 0
	}
	return utf8.DecodeRuneInString(buffer[i:end])
}

func startsNumber(buffer string, i int, end int) bool {
	r, size := runeAt(buffer, i, end)
	if isDigit(r) {
		return true
	}
	if isCurrencySymbol(r) {
		next, _ := runeAt(buffer, i+size, end)
		return isDigit(next)
	}
	return false
}

// Tokenize splits a buffer into tokens that cover it exactly
func Tokenize(buffer string) []Token {
	return tokenizeRange(buffer, 0, len(buffer))
}

func tokenizeRange(buffer string, start int, end int) []Token {
	var tokens []Token

	add := func(kind int, from int, to int) {
		tokens = append(tokens, Token{Kind: kind, Raw: buffer[from:to], Span: Span{from, to}})
	}

	i := start
	for i < end {
		r, size := runeAt(buffer, i, end)

		switch {
		case unicode.IsSpace(r):
			j := i + size
			for j < end {
				next, nextSize := runeAt(buffer, j, end)
				if !unicode.IsSpace(next) {
					break
				}
				j += nextSize
			}
			add(SINGLISH_TOKEN_WHITESPACE, i, j)
			i = j

		case startsNumber(buffer, i, end):
			j := scanNumber(buffer, i, end)
			add(SINGLISH_TOKEN_NUMERIC, i, j)
			i = j

		case isWordRune(r):
			j := scanWord(buffer, i, end)
			add(SINGLISH_TOKEN_WORD, i, j)
			i = j

		case closingQuotes[r] != 0:
			closeAt := strings.IndexRune(buffer[i+size:end], closingQuotes[r])
			if closeAt < 0 {
				// Unterminated, the mark is plain punctuation
				add(SINGLISH_TOKEN_PUNCTUATION, i, i+size)
				i += size
				continue
			}

			innerStart := i + size
			innerEnd := innerStart + closeAt
			_, closeSize := runeAt(buffer, innerEnd, end)

			tokens = append(tokens, Token{
				Kind:  SINGLISH_TOKEN_QUOTED,
				Raw:   buffer[i : innerEnd+closeSize],
				Span:  Span{i, innerEnd + closeSize},
				Inner: tokenizeRange(buffer, innerStart, innerEnd),
			})
			i = innerEnd + closeSize

		default:
			j := i + size
			for j < end {
				next, nextSize := runeAt(buffer, j, end)
				if unicode.IsSpace(next) || isWordRune(next) || closingQuotes[next] != 0 || startsNumber(buffer, j, end) {
					break
				}
				j += nextSize
			}
			add(SINGLISH_TOKEN_PUNCTUATION, i, j)
			i = j
		}
	}

	return tokens
}

// A letter run. Apostrophes and hyphens stay inside when letters are on
// both sides of them.
func scanWord(buffer string, i int, end int) int {
	j := i
	for j < end {
		r, size := runeAt(buffer, j, end)
		if isWordRune(r) {
			j += size
			continue
		}
		if r == '\'' || r == '’' || r == '-' {
			next, _ := runeAt(buffer, j+size, end)
			if j > i && unicode.IsLetter(next) {
				j += size
				continue
			}
		}
		break
	}
	return j
}

// Digits with inner separators, an optional leading currency symbol and
// an optional trailing percent sign
func scanNumber(buffer string, i int, end int) int {
	j := i
	r, size := runeAt(buffer, j, end)
	if isCurrencySymbol(r) {
		j += size
	}

	for j < end {
		r, size = runeAt(buffer, j, end)
		if isDigit(r) {
			j += size
			continue
		}
		if strings.ContainsRune(numericSeparators, r) {
			next, _ := runeAt(buffer, j+size, end)
			if isDigit(next) {
				j += size
				continue
			}
		}
		break
	}

	// Letters after the digits are a word of their own, 5ta is 5 and ta.
	// The classifier keeps units such as the ml of 750ml numeric.
	if r, size = runeAt(buffer, j, end); r == '%' {
		j += size
	}

	return j
}
