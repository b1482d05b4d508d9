package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

// SchemeDetails of a rule set
type SchemeDetails struct {
	Identifier   string
	LangCode     string
	DisplayName  string
	Author       string
	CompiledDate string
}

// Scheme is everything needed to build an engine's static data
type Scheme struct {
	Details    SchemeDetails
	Rules      []Rule
	Exceptions map[string]string
}

const BUILTIN_SCHEME_ID = "si-singlish"

func vowel(pattern, independent, sign string) Rule {
	return Rule{Type: SINGLISH_SYMBOL_VOWEL, Pattern: pattern, Value1: independent, Value2: sign}
}

func consonant(pattern, value string) Rule {
	return Rule{Type: SINGLISH_SYMBOL_CONSONANT, Pattern: pattern, Value1: value}
}

// Conjunct signs only attach to a bare consonant. Without one the pattern
// falls back to whatever else the table has for it.
func conjunct(pattern, base string) Rule {
	return Rule{
		Type:     SINGLISH_SYMBOL_CONJUNCT,
		Pattern:  pattern,
		Value1:   base,
		Value2:   VIRAMA + ZWJ + base,
		Priority: 10,
		Context:  SINGLISH_CONTEXT_AFTER_CONSONANT,
	}
}

func singlishRules() []Rule {
	return []Rule{
		vowel("a", "අ", ""),
		vowel("aa", "ආ", "ා"),
		vowel("ae", "ඇ", "ැ"),
		vowel("aee", "ඈ", "ෑ"),
		vowel("i", "ඉ", "ි"),
		vowel("ii", "ඊ", "ී"),
		vowel("u", "උ", "ු"),
		vowel("uu", "ඌ", "ූ"),
		vowel("Ru", "ඍ", "ෘ"),
		vowel("e", "එ", "ෙ"),
		vowel("ee", "ඒ", "ේ"),
		vowel("ai", "ඓ", "ෛ"),
		vowel("o", "ඔ", "ො"),
		vowel("oo", "ඕ", "ෝ"),
		vowel("au", "ඖ", "ෞ"),

		consonant("k", "ක"),
		consonant("kh", "ඛ"),
		consonant("K", "ඛ"),
		consonant("g", "ග"),
		consonant("gh", "ඝ"),
		consonant("G", "ඝ"),
		consonant("nng", "ඟ"),
		consonant("ch", "ච"),
		consonant("Ch", "ඡ"),
		consonant("chh", "ඡ"),
		consonant("j", "ජ"),
		consonant("jh", "ඣ"),
		consonant("KN", "ඤ"),
		consonant("GN", "ඥ"),
		consonant("nnj", "ඦ"),
		consonant("t", "ට"),
		consonant("T", "ඨ"),
		consonant("d", "ඩ"),
		consonant("D", "ඪ"),
		consonant("N", "ණ"),
		consonant("nnd", "ඬ"),
		consonant("th", "ත"),
		consonant("Th", "ථ"),
		consonant("dh", "ද"),
		consonant("Dh", "ධ"),
		consonant("n", "න"),
		consonant("DH", "ඳ"),
		consonant("nndh", "ඳ"),
		consonant("p", "ප"),
		consonant("ph", "ඵ"),
		consonant("P", "ඵ"),
		consonant("b", "බ"),
		consonant("bh", "භ"),
		consonant("Bh", "භ"),
		consonant("m", "ම"),
		consonant("B", "ඹ"),
		consonant("mmb", "ඹ"),
		consonant("y", "ය"),
		consonant("r", "ර"),
		consonant("l", "ල"),
		consonant("v", "ව"),
		consonant("w", "ව"),
		consonant("sh", "ශ"),
		consonant("Sh", "ෂ"),
		consonant("s", "ස"),
		consonant("h", "හ"),
		consonant("L", "ළ"),
		consonant("f", "ෆ"),

		conjunct("r", "ර"), // rakaransaya
		conjunct("Y", "ය"), // yansaya

		{Type: SINGLISH_SYMBOL_ANUSVARA, Pattern: "QQ", Value1: "ං"},
		{Type: SINGLISH_SYMBOL_VISARGA, Pattern: "QH", Value1: "ඃ"},
	}
}

// Irregular and slang spellings the rules get wrong
func singlishExceptions() map[string]string {
	return map[string]string{
		"hariyanne": "හරියන්නේ",
		"ow":        "ඔව්",
		"Ow":        "ඔව්",
		"sri":       "ශ්\u200dරී",
		"Sri":       "ශ්\u200dරී",
		"lankaa":    "ලංකා",
		"lankaava":  "ලංකාව",
		"hmm":       "හ්ම්",
		"ado":       "අඩෝ",
		"ela":       "එළ",
	}
}

// SinglishScheme is the built-in Singlish rule set
func SinglishScheme() Scheme {
	return Scheme{
		Details: SchemeDetails{
			Identifier:  BUILTIN_SCHEME_ID,
			LangCode:    "si",
			DisplayName: "Singlish",
			Author:      "singlish contributors",
		},
		Rules:      singlishRules(),
		Exceptions: singlishExceptions(),
	}
}
