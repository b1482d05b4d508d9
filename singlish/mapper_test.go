package singlish

import (
	"testing"
)

func newTestMapper() *Mapper {
	table, err := NewRuleTable(singlishRules())
	checkError(err)
	return NewMapper(table)
}

func TestMap(t *testing.T) {
	mapper := newTestMapper()

	cases := map[string]string{
		"mama":           "මම",
		"gedhara":        "ගෙදර",
		"yanavaa":        "යනවා",
		"eLakiri":        "එළකිරි",
		"athugaanavadha": "අතුගානවද",
		"k":              "ක්",
		"kQQ":            "කං",
		"kra":            "ක්\u200dර",
		"kYaa":           "ක්\u200dයා",
		"rr":             "ර්ර්",
		"Sama":           "සම",
		"Th":             "ථ්",
		"QHa":            "අඃඅ",
	}

	for input, expected := range cases {
		assertSinhala(t, mapper.Map(input), expected)
	}
}

func TestMapUnmapped(t *testing.T) {
	mapper := newTestMapper()

	assertEqual(t, mapper.Map("x"), "x")
	// Pending consonant is closed before the unmapped character
	assertSinhala(t, mapper.Map("kx"), "ක්x")
	assertSinhala(t, mapper.Map("abc"), "අබ්c")
	assertEqual(t, mapper.Map(""), "")
}

func TestRepairOrphanSigns(t *testing.T) {
	cases := map[string]string{
		"ා":        "ආ",
		"්":        "",
		"ං":        "අං",
		"කා":  "කා",
		"අං":  "අං",
		"xෙ":       "xඑ",
		"ක්්": "ක්",
	}

	for input, expected := range cases {
		assertEqual(t, repairOrphanSigns(input), expected)
	}
}
