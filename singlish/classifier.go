package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

/* Classes a token can be given */
const SINGLISH_CLASS_PHONETIC = 1    // Mapped with the rule table
const SINGLISH_CLASS_EXCEPTION = 2   // Mapped with the exception dictionary
const SINGLISH_CLASS_FOREIGN = 3     // Passthrough
const SINGLISH_CLASS_NUMERIC = 4     // Passthrough
const SINGLISH_CLASS_PUNCTUATION = 5 // Passthrough
const SINGLISH_CLASS_WHITESPACE = 6  // Passthrough
const SINGLISH_CLASS_QUOTED = 7      // Quote marks around classified Inner segments

var classNames = map[string]int{
	"phonetic": SINGLISH_CLASS_PHONETIC,
	"foreign":  SINGLISH_CLASS_FOREIGN,
	"numeric":  SINGLISH_CLASS_NUMERIC,
}

// Segment is a classified token
type Segment struct {
	Token
	Class int

	// Filled for quotes that were not passed through as a whole
	Inner []Segment
}

// Passthrough reports whether the segment appears unchanged in output
func (seg Segment) Passthrough() bool {
	switch seg.Class {
	case SINGLISH_CLASS_FOREIGN, SINGLISH_CLASS_NUMERIC, SINGLISH_CLASS_PUNCTUATION, SINGLISH_CLASS_WHITESPACE:
		return true
	}
	return false
}

// Classifier decides how every token of a buffer is rendered
type Classifier struct {
	rules      *RuleTable
	exceptions map[string]string

	allowList       map[string]bool
	lexicon         map[string]bool
	currencyMarkers map[string]bool
	units           map[string]bool
	overrides       map[string]int
}

func toSet(dst map[string]bool, words []string, fold bool) {
	for _, word := range words {
		word = strings.TrimSpace(word)
		if word == "" {
			continue
		}
		if fold {
			word = strings.ToLower(word)
		}
		dst[word] = true
	}
}

// NewClassifier builds a classifier. The built-in word lists are used
// unless config disables them, config lists are added on top.
func NewClassifier(rules *RuleTable, exceptions map[string]string, config ClassifierConfig) (*Classifier, error) {
	c := &Classifier{
		rules:           rules,
		exceptions:      make(map[string]string, len(exceptions)),
		allowList:       make(map[string]bool),
		lexicon:         make(map[string]bool),
		currencyMarkers: make(map[string]bool),
		units:           make(map[string]bool),
		overrides:       make(map[string]int),
	}

	for pattern, word := range exceptions {
		c.exceptions[norm.NFC.String(pattern)] = word
	}

	if !config.DisableDefaults {
		toSet(c.allowList, defaultAllowList, false)
		toSet(c.lexicon, defaultLexicon, true)
		toSet(c.currencyMarkers, defaultCurrencyMarkers, false)
		toSet(c.units, defaultUnits, true)
	}

	toSet(c.allowList, config.AllowList, false)
	toSet(c.lexicon, config.Lexicon, true)
	toSet(c.currencyMarkers, config.CurrencyMarkers, false)
	toSet(c.units, config.Units, true)

	for word, className := range config.Overrides {
		class, ok := classNames[strings.ToLower(className)]
		if !ok {
			return nil, fmt.Errorf("override for '%s': unknown class '%s'", word, className)
		}
		c.overrides[word] = class
	}

	tracer().Infof("classifier: %d allow-list words, %d lexicon words, %d exceptions", len(c.allowList), len(c.lexicon), len(c.exceptions))

	return c, nil
}

// Exception returns the fixed output for a token, if there is one
func (c *Classifier) Exception(raw string) (string, bool) {
	word, ok := c.exceptions[norm.NFC.String(raw)]
	return word, ok
}

// Classify tokens produced by Tokenize
func (c *Classifier) Classify(tokens []Token) []Segment {
	segments := make([]Segment, 0, len(tokens))

	afterNumber := false
	for _, token := range tokens {
		seg := Segment{Token: token}

		switch token.Kind {
		case SINGLISH_TOKEN_WHITESPACE:
			seg.Class = SINGLISH_CLASS_WHITESPACE
		case SINGLISH_TOKEN_NUMERIC:
			seg.Class = SINGLISH_CLASS_NUMERIC
		case SINGLISH_TOKEN_PUNCTUATION:
			seg.Class = SINGLISH_CLASS_PUNCTUATION
		case SINGLISH_TOKEN_WORD:
			seg.Class = c.classifyWord(token.Raw, afterNumber)
		case SINGLISH_TOKEN_QUOTED:
			if c.looksForeign(token.Inner) {
				seg.Class = SINGLISH_CLASS_FOREIGN
			} else {
				seg.Class = SINGLISH_CLASS_QUOTED
				seg.Inner = c.Classify(token.Inner)
			}
		}

		tracer().Debugf("token %q classified %d", token.Raw, seg.Class)

		if token.Kind == SINGLISH_TOKEN_NUMERIC {
			afterNumber = true
		} else if token.Kind != SINGLISH_TOKEN_WHITESPACE {
			afterNumber = false
		}

		// A unit typed right after the digits joins them: 750ml, 6FT
		if last := len(segments) - 1; last >= 0 && token.Kind == SINGLISH_TOKEN_WORD &&
			seg.Class == SINGLISH_CLASS_NUMERIC && segments[last].Kind == SINGLISH_TOKEN_NUMERIC &&
			segments[last].Span.End == token.Span.Start {
			segments[last].Raw += token.Raw
			segments[last].Span.End = token.Span.End
			continue
		}

		segments = append(segments, seg)
	}

	return segments
}

func (c *Classifier) classifyWord(raw string, afterNumber bool) int {
	if c.currencyMarkers[raw] || (afterNumber && c.units[strings.ToLower(raw)]) {
		return SINGLISH_CLASS_NUMERIC
	}

	if c.allowList[raw] {
		return SINGLISH_CLASS_FOREIGN
	}
	if class, ok := c.overrides[raw]; ok {
		return class
	}

	if _, ok := c.Exception(raw); ok {
		return SINGLISH_CLASS_EXCEPTION
	}

	if c.lexicon[strings.ToLower(raw)] || c.isAcronym(raw) {
		return SINGLISH_CLASS_FOREIGN
	}

	if c.inAlphabet(raw) {
		return SINGLISH_CLASS_PHONETIC
	}
	return SINGLISH_CLASS_FOREIGN
}

func (c *Classifier) inAlphabet(raw string) bool {
	for _, r := range raw {
		if !c.rules.InAlphabet(r) {
			return false
		}
	}
	return true
}

// Two or more letters, all upper case: NIC, PM
func isAcronym(raw string) bool {
	letters := 0
	for _, r := range raw {
		if !unicode.IsLetter(r) {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
		letters++
	}
	return letters >= 2
}

// Acronyms are foreign unless they are spelled in the upper case
// notation of the rule table (QQ, QH, DH)
func (c *Classifier) isAcronym(raw string) bool {
	return isAcronym(raw) && !c.inCapitalNotation(raw)
}

// The word splits into exact case patterns and at least one of them is a
// multi letter capital pattern. Single capitals (T, N) also start acronyms
// like TV and NIC so they don't count on their own.
func (c *Classifier) inCapitalNotation(raw string) bool {
	runes := []rune(raw)
	digraph := false
	for i := 0; i < len(runes); {
		_, length, ok := c.rules.match(runes, matchState{position: i, length: len(runes)})
		if !ok {
			return false
		}
		if length > 1 {
			digraph = true
		}
		i += length
	}
	return digraph
}

// "Pirates". Only counted for words inside quotes.
func isTitleCase(raw string) bool {
	runes := []rune(raw)
	if len(runes) < 2 || !unicode.IsUpper(runes[0]) {
		return false
	}
	for _, r := range runes[1:] {
		if unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func (c *Classifier) wordLooksForeign(raw string) bool {
	return c.allowList[raw] || c.lexicon[strings.ToLower(raw)] || c.isAcronym(raw) ||
		!c.inAlphabet(raw) || isTitleCase(raw)
}

// A quote is passed through as a whole when a strict majority of its
// words look foreign
func (c *Classifier) looksForeign(inner []Token) bool {
	words, foreign := 0, 0
	for _, token := range inner {
		if token.Kind != SINGLISH_TOKEN_WORD {
			continue
		}
		words++
		if _, ok := c.Exception(token.Raw); ok {
			continue
		}
		if c.wordLooksForeign(token.Raw) {
			foreign++
		}
	}
	return words > 0 && foreign*2 > words
}
