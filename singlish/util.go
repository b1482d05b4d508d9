package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"unicode"
	"unicode/utf8"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'singlish'
func tracer() tracing.Trace {
	return tracing.Select("singlish")
}

func getFirstCharacter(input string) (string, int) {
	r, size := utf8.DecodeRuneInString(input)
	if r == utf8.RuneError && (size == 0 || size == 1) {
		size = 0
	}
	return input[0:size], size
}

func getLastCharacter(input string) (string, int) {
	r, size := utf8.DecodeLastRuneInString(input)
	if r == utf8.RuneError && (size == 0 || size == 1) {
		size = 0
	}
	return input[len(input)-size:], size
}

// Sinhala block ranges used by the orthography checks
var (
	sinhalaConsonants = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0D9A, Hi: 0x0DC6, Stride: 1}}}
	sinhalaVowels     = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0D85, Hi: 0x0D96, Stride: 1}}}
	sinhalaSigns      = &unicode.RangeTable{R16: []unicode.Range16{
		{Lo: 0x0DCA, Hi: 0x0DCA, Stride: 1},
		{Lo: 0x0DCF, Hi: 0x0DDF, Stride: 1},
		{Lo: 0x0DF2, Hi: 0x0DF3, Stride: 1},
	}}
	sinhalaModifiers = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0x0D82, Hi: 0x0D83, Stride: 1}}}
)

func isSinhalaConsonant(r rune) bool {
	return unicode.Is(sinhalaConsonants, r)
}

func isSinhalaVowel(r rune) bool {
	return unicode.Is(sinhalaVowels, r)
}

func isSinhalaSign(r rune) bool {
	return unicode.Is(sinhalaSigns, r)
}

func isSinhalaModifier(r rune) bool {
	return unicode.Is(sinhalaModifiers, r)
}
