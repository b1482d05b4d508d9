package singlish

import (
	"testing"

	"github.com/go-test/deep"
)

func newTestClassifier(config ClassifierConfig) *Classifier {
	table, err := NewRuleTable(singlishRules())
	checkError(err)

	classifier, err := NewClassifier(table, singlishExceptions(), config)
	checkError(err)

	return classifier
}

type rawClass struct {
	Raw   string
	Class int
}

func classesOf(segments []Segment) []rawClass {
	var result []rawClass
	for _, seg := range segments {
		if seg.Class == SINGLISH_CLASS_WHITESPACE {
			continue
		}
		result = append(result, rawClass{seg.Raw, seg.Class})
	}
	return result
}

func TestClassify(t *testing.T) {
	classifier := newTestClassifier(ClassifierConfig{})

	segments := classifier.Classify(Tokenize("mage NIC eka bag eke hariyanne 20 kg, Rs. 750ml ශ්\u200dරී x-ray Phone"))

	expected := []rawClass{
		{"mage", SINGLISH_CLASS_FOREIGN},
		{"NIC", SINGLISH_CLASS_FOREIGN},
		{"eka", SINGLISH_CLASS_PHONETIC},
		{"bag", SINGLISH_CLASS_FOREIGN},
		{"eke", SINGLISH_CLASS_FOREIGN},
		{"hariyanne", SINGLISH_CLASS_EXCEPTION},
		{"20", SINGLISH_CLASS_NUMERIC},
		{"kg", SINGLISH_CLASS_NUMERIC},
		{",", SINGLISH_CLASS_PUNCTUATION},
		{"Rs", SINGLISH_CLASS_NUMERIC},
		{".", SINGLISH_CLASS_PUNCTUATION},
		{"750ml", SINGLISH_CLASS_NUMERIC},
		{"ශ්\u200dරී", SINGLISH_CLASS_FOREIGN},
		{"x-ray", SINGLISH_CLASS_FOREIGN},
		{"Phone", SINGLISH_CLASS_FOREIGN},
	}

	if diff := deep.Equal(classesOf(segments), expected); diff != nil {
		t.Error(diff)
	}
}

func TestClassifyUnits(t *testing.T) {
	classifier := newTestClassifier(ClassifierConfig{})

	// Units only count right after a number
	segments := classifier.Classify(Tokenize("g 5 g"))
	assertEqual(t, segments[0].Class, SINGLISH_CLASS_PHONETIC)
	assertEqual(t, segments[4].Class, SINGLISH_CLASS_NUMERIC)

	// Attached units join the number, other letters stay a word
	expected := []rawClass{
		{"750ml", SINGLISH_CLASS_NUMERIC},
		{"6FT", SINGLISH_CLASS_NUMERIC},
		{"5", SINGLISH_CLASS_NUMERIC},
		{"ta", SINGLISH_CLASS_PHONETIC},
		{"3rd", SINGLISH_CLASS_NUMERIC},
	}
	segments = classifier.Classify(Tokenize("750ml 6FT 5ta 3rd"))
	if diff := deep.Equal(classesOf(segments), expected); diff != nil {
		t.Error(diff)
	}

	span := segments[0].Span
	assertEqual(t, span.Start, 0)
	assertEqual(t, span.End, 5)
}

func TestClassifyAcronyms(t *testing.T) {
	classifier := newTestClassifier(ClassifierConfig{})

	assertEqual(t, classifier.classifyWord("SLT", false), SINGLISH_CLASS_FOREIGN)
	assertEqual(t, classifier.classifyWord("A", false), SINGLISH_CLASS_PHONETIC)
	assertEqual(t, classifier.classifyWord("hoDHAta", false), SINGLISH_CLASS_PHONETIC)
	assertEqual(t, classifier.classifyWord("Mama", false), SINGLISH_CLASS_PHONETIC)

	// Capital digraphs of the rule table are not acronyms
	assertEqual(t, classifier.classifyWord("QQ", false), SINGLISH_CLASS_PHONETIC)
	assertEqual(t, classifier.classifyWord("QH", false), SINGLISH_CLASS_PHONETIC)
	assertEqual(t, classifier.classifyWord("DH", false), SINGLISH_CLASS_PHONETIC)
	// Single capital patterns are
	assertEqual(t, classifier.classifyWord("DB", false), SINGLISH_CLASS_FOREIGN)
	assertEqual(t, classifier.classifyWord("NT", false), SINGLISH_CLASS_FOREIGN)
	assertEqual(t, classifier.classifyWord("DHL", false), SINGLISH_CLASS_FOREIGN)
}

func TestClassifyQuotes(t *testing.T) {
	classifier := newTestClassifier(ClassifierConfig{})

	segments := classifier.Classify(Tokenize(`api "Pirates of the Caribbean" balanna`))
	assertEqual(t, segments[2].Class, SINGLISH_CLASS_FOREIGN)
	assertEqual(t, len(segments[2].Inner), 0)

	segments = classifier.Classify(Tokenize(`eyaa "mama enavaa" kivvaa`))
	assertEqual(t, segments[2].Class, SINGLISH_CLASS_QUOTED)

	expected := []rawClass{
		{"mama", SINGLISH_CLASS_PHONETIC},
		{"enavaa", SINGLISH_CLASS_PHONETIC},
	}
	if diff := deep.Equal(classesOf(segments[2].Inner), expected); diff != nil {
		t.Error(diff)
	}

	// Half foreign is not a majority
	segments = classifier.Classify(Tokenize(`"Hello mama"`))
	assertEqual(t, segments[0].Class, SINGLISH_CLASS_QUOTED)

	segments = classifier.Classify(Tokenize(`""`))
	assertEqual(t, segments[0].Class, SINGLISH_CLASS_QUOTED)
}

func TestClassifierConfig(t *testing.T) {
	classifier := newTestClassifier(ClassifierConfig{
		AllowList:       []string{"SriLanka"},
		Lexicon:         []string{"Dinner"},
		CurrencyMarkers: []string{"rupees"},
		Overrides:       map[string]string{"phone": "phonetic", "kiri": "Foreign"},
	})

	assertEqual(t, classifier.classifyWord("SriLanka", false), SINGLISH_CLASS_FOREIGN)
	assertEqual(t, classifier.classifyWord("dinner", false), SINGLISH_CLASS_FOREIGN)
	assertEqual(t, classifier.classifyWord("rupees", false), SINGLISH_CLASS_NUMERIC)
	assertEqual(t, classifier.classifyWord("phone", false), SINGLISH_CLASS_PHONETIC)
	assertEqual(t, classifier.classifyWord("kiri", false), SINGLISH_CLASS_FOREIGN)

	// Defaults still apply
	assertEqual(t, classifier.classifyWord("NIC", false), SINGLISH_CLASS_FOREIGN)
	assertEqual(t, classifier.classifyWord("battery", false), SINGLISH_CLASS_FOREIGN)

	withoutDefaults := newTestClassifier(ClassifierConfig{DisableDefaults: true})
	assertEqual(t, withoutDefaults.classifyWord("battery", false), SINGLISH_CLASS_PHONETIC)
	assertEqual(t, withoutDefaults.classifyWord("Rs", false), SINGLISH_CLASS_PHONETIC)
}

func TestClassifierBadOverride(t *testing.T) {
	table, err := NewRuleTable(singlishRules())
	checkError(err)

	_, err = NewClassifier(table, nil, ClassifierConfig{Overrides: map[string]string{"x": "klingon"}})
	assertEqual(t, err != nil, true)
}

func TestExceptionIsNormalised(t *testing.T) {
	table, err := NewRuleTable(singlishRules())
	checkError(err)

	// e + combining acute, composed by NFC
	classifier, err := NewClassifier(table, map[string]string{"cafe\u0301": "කැෆේ"}, ClassifierConfig{})
	checkError(err)

	word, ok := classifier.Exception("caf\u00e9")
	assertEqual(t, ok, true)
	assertEqual(t, word, "කැෆේ")
}
