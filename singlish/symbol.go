package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"errors"
	"fmt"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/derekparker/trie"
)

var (
	// ErrInvalidRule is returned for rules with missing or out of range fields
	ErrInvalidRule = errors.New("invalid rule")

	// ErrDuplicateRule is returned when two rules would compete for the
	// same input with nothing to break the tie
	ErrDuplicateRule = errors.New("duplicate rule")
)

// Rule maps a Singlish grapheme sequence to Sinhala
type Rule struct {
	Identifier int
	Type       int
	Pattern    string

	// Standalone form: independent vowel, bare consonant
	Value1 string

	// Dependent form used right after a consonant: vowel sign, conjunct sign
	Value2 string

	Tag             string
	Priority        int
	AcceptCondition int
	Context         int
}

// RuleTable is the read-only rule index shared by every evaluation.
// Rules are grouped by pattern in a trie, each group sorted by priority.
type RuleTable struct {
	rules    []Rule
	index    *trie.Trie
	longest  int
	alphabet map[rune]bool
}

// What the mapper knows about the position being matched
type matchState struct {
	position       int
	length         int
	afterConsonant bool
	lastConsonant  string
}

func (rule Rule) accepts(state matchState, patternLength int) bool {
	switch rule.AcceptCondition {
	case SINGLISH_TOKEN_ACCEPT_IF_STARTS_WITH:
		if state.position != 0 {
			return false
		}
	case SINGLISH_TOKEN_ACCEPT_IF_IN_BETWEEN:
		if state.position == 0 || state.position+patternLength >= state.length {
			return false
		}
	case SINGLISH_TOKEN_ACCEPT_IF_ENDS_WITH:
		if state.position+patternLength != state.length {
			return false
		}
	}

	switch rule.Context {
	case SINGLISH_CONTEXT_AFTER_CONSONANT:
		if !state.afterConsonant {
			return false
		}
	case SINGLISH_CONTEXT_NOT_AFTER_CONSONANT:
		if state.afterConsonant {
			return false
		}
	}

	// No rakaransaya on ර itself, "rr" stays two plain consonants
	if rule.Type == SINGLISH_SYMBOL_CONJUNCT && state.lastConsonant == rule.Value1 {
		return false
	}

	return true
}

func validateRule(rule Rule) error {
	if rule.Pattern == "" || rule.Value1 == "" {
		return fmt.Errorf("%w: pattern or value1 is empty", ErrInvalidRule)
	}

	if len(rule.Pattern) > SINGLISH_SYMBOL_MAX || len(rule.Value1) > SINGLISH_SYMBOL_MAX ||
		len(rule.Value2) > SINGLISH_SYMBOL_MAX || len(rule.Tag) > SINGLISH_SYMBOL_MAX {
		return fmt.Errorf("%w: length of pattern, tag, value1 or value2 should be less than SINGLISH_SYMBOL_MAX", ErrInvalidRule)
	}

	if !utf8.ValidString(rule.Pattern) {
		return fmt.Errorf("%w: pattern %q is not valid UTF-8", ErrInvalidRule, rule.Pattern)
	}

	if rule.Type < SINGLISH_SYMBOL_VOWEL || rule.Type > SINGLISH_SYMBOL_VISARGA {
		return fmt.Errorf("%w: unknown symbol type %d for '%s'", ErrInvalidRule, rule.Type, rule.Pattern)
	}

	if rule.Type == SINGLISH_SYMBOL_CONJUNCT && rule.Value2 == "" {
		return fmt.Errorf("%w: conjunct '%s' needs a dependent form in value2", ErrInvalidRule, rule.Pattern)
	}

	if rule.AcceptCondition < SINGLISH_TOKEN_ACCEPT_ALL || rule.AcceptCondition > SINGLISH_TOKEN_ACCEPT_IF_ENDS_WITH {
		return fmt.Errorf("%w: invalid accept condition specified. It should be one of SINGLISH_TOKEN_ACCEPT_XXX", ErrInvalidRule)
	}

	if rule.Context < SINGLISH_CONTEXT_ANY || rule.Context > SINGLISH_CONTEXT_NOT_AFTER_CONSONANT {
		return fmt.Errorf("%w: invalid context specified. It should be one of SINGLISH_CONTEXT_XXX", ErrInvalidRule)
	}

	return nil
}

// NewRuleTable validates rules and builds the lookup index
func NewRuleTable(rules []Rule) (*RuleTable, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: rule table is empty", ErrInvalidRule)
	}

	table := &RuleTable{
		rules:    make([]Rule, len(rules)),
		index:    trie.New(),
		alphabet: make(map[rune]bool),
	}
	copy(table.rules, rules)

	groups := make(map[string][]Rule)
	var patterns []string

	for i := range table.rules {
		rule := &table.rules[i]
		if rule.Identifier == 0 {
			rule.Identifier = i + 1
		}

		if err := validateRule(*rule); err != nil {
			return nil, err
		}

		if _, seen := groups[rule.Pattern]; !seen {
			patterns = append(patterns, rule.Pattern)
		}
		groups[rule.Pattern] = append(groups[rule.Pattern], *rule)

		length := utf8.RuneCountInString(rule.Pattern)
		if length > table.longest {
			table.longest = length
		}

		for _, r := range rule.Pattern {
			table.alphabet[r] = true
			table.alphabet[unicode.ToLower(r)] = true
			table.alphabet[unicode.ToUpper(r)] = true
		}
	}

	for _, pattern := range patterns {
		group := groups[pattern]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].Priority > group[j].Priority
		})

		for i := 1; i < len(group); i++ {
			prev, cur := group[i-1], group[i]
			if prev.Priority == cur.Priority && prev.Context == cur.Context && prev.AcceptCondition == cur.AcceptCondition {
				return nil, fmt.Errorf("%w: there is already a match available for '%s => %s' with priority %d", ErrDuplicateRule, cur.Pattern, prev.Value1, cur.Priority)
			}
		}

		table.index.Add(pattern, group)
	}

	tracer().Infof("rule table built: %d rules, %d patterns, longest pattern %d", len(table.rules), len(patterns), table.longest)

	return table, nil
}

// Rules returns a copy of all rules in insertion order
func (table *RuleTable) Rules() []Rule {
	rules := make([]Rule, len(table.rules))
	copy(rules, table.rules)
	return rules
}

// Lookup rules registered for exactly this pattern, highest priority first
func (table *RuleTable) Lookup(pattern string) []Rule {
	node, ok := table.index.Find(pattern)
	if !ok {
		return nil
	}
	group, _ := node.Meta().([]Rule)
	return group
}

// LongestPattern length in runes
func (table *RuleTable) LongestPattern() int {
	return table.longest
}

// InAlphabet reports whether r appears in any pattern, in either case
func (table *RuleTable) InAlphabet(r rune) bool {
	return table.alphabet[r]
}

// Find the rule with the longest pattern starting at state.position.
// Among rules of one pattern the highest priority whose accept condition
// and context hold wins. When none hold, shorter patterns are tried.
func (table *RuleTable) match(runes []rune, state matchState) (Rule, int, bool) {
	end := state.position + table.longest
	if end > len(runes) {
		end = len(runes)
	}

	var groups [][]Rule
	for i := state.position; i < end; i++ {
		key := string(runes[state.position : i+1])
		if !table.index.HasKeysWithPrefix(key) {
			break
		}

		var group []Rule
		if node, ok := table.index.Find(key); ok {
			group, _ = node.Meta().([]Rule)
		}
		groups = append(groups, group)
	}

	for length := len(groups); length > 0; length-- {
		for _, rule := range groups[length-1] {
			if rule.accepts(state, length) {
				return rule, length, true
			}
		}
	}

	return Rule{}, 0, false
}
