package singlish

import (
	sql "database/sql"
	"errors"
	"os"
	"path"
	"testing"
)

func testSchemeDetails(identifier string) SchemeDetails {
	return SchemeDetails{
		Identifier:  identifier,
		LangCode:    "si",
		DisplayName: "Test " + identifier,
		Author:      "singlish",
	}
}

func TestVSTMaker(t *testing.T) {
	vstPath := path.Join(testTempDir, "maker.vst")

	vm, err := VMInit(vstPath)
	checkError(err)

	checkError(vm.CreateToken(consonant("k", "ක"), false))
	checkError(vm.CreateToken(vowel("a", "අ", ""), true))
	checkError(vm.CreateToken(vowel("aa", "ආ", "ා"), true))

	err = vm.CreateToken(consonant("k", "ඛ"), true)
	assertEqual(t, errors.Is(err, ErrDuplicateRule), true)

	// The failed duplicate threw away the buffered tokens
	checkError(vm.CreateToken(vowel("a", "අ", ""), true))

	vm.IgnoreDuplicateTokens = true
	checkError(vm.CreateToken(consonant("k", "ඛ"), true))

	err = vm.CreateToken(Rule{Type: SINGLISH_SYMBOL_VOWEL, Pattern: ""}, true)
	assertEqual(t, errors.Is(err, ErrInvalidRule), true)

	checkError(vm.Train("machan", "මචං"))
	checkError(vm.Train("machan", "මචන්"))
	checkError(vm.Train("ado", "අඩෝ"))
	checkError(vm.Unlearn("ado"))

	err = vm.SetSchemeDetails(SchemeDetails{LangCode: "sin"})
	assertEqual(t, err != nil, true)
	checkError(vm.SetSchemeDetails(testSchemeDetails("si-test")))

	checkError(vm.FlushBuffer())
	checkError(vm.Close())

	scheme, err := LoadVST(vstPath)
	checkError(err)

	assertEqual(t, scheme.Details.Identifier, "si-test")
	assertEqual(t, scheme.Details.LangCode, "si")
	assertEqual(t, len(scheme.Rules), 2)
	assertEqual(t, scheme.Rules[0].Pattern, "k")
	assertEqual(t, scheme.Rules[0].Value1, "ක")
	assertEqual(t, scheme.Rules[1].Pattern, "a")
	assertEqual(t, len(scheme.Exceptions), 1)
	assertEqual(t, scheme.Exceptions["machan"], "මචන්")
}

func TestVSTDeleteToken(t *testing.T) {
	vstPath := path.Join(testTempDir, "delete.vst")
	checkError(CompileScheme(SinglishScheme(), vstPath))

	vm, err := VMInit(vstPath)
	checkError(err)

	checkError(vm.DeleteToken("r", SINGLISH_SYMBOL_CONJUNCT))
	assertEqual(t, vm.DeleteToken("", 0) != nil, true)
	checkError(vm.FlushBuffer())
	checkError(vm.Close())

	scheme, err := LoadVST(vstPath)
	checkError(err)

	count := 0
	for _, rule := range scheme.Rules {
		if rule.Pattern == "r" {
			assertEqual(t, rule.Type, SINGLISH_SYMBOL_CONSONANT)
			count++
		}
	}
	assertEqual(t, count, 1)
	assertEqual(t, len(scheme.Rules), len(SinglishScheme().Rules)-1)
}

func TestVSTLock(t *testing.T) {
	vstPath := path.Join(testTempDir, "locked.vst")

	vm, err := VMInit(vstPath)
	checkError(err)

	_, err = VMInit(vstPath)
	assertEqual(t, errors.Is(err, ErrVSTLocked), true)

	checkError(vm.Close())

	vm, err = VMInit(vstPath)
	checkError(err)
	checkError(vm.Close())
}

func TestCompileScheme(t *testing.T) {
	vstPath := path.Join(testTempDir, "compiled.vst")
	builtin := SinglishScheme()

	checkError(CompileScheme(builtin, vstPath))

	scheme, err := LoadVST(vstPath)
	checkError(err)

	assertEqual(t, scheme.Details.Identifier, BUILTIN_SCHEME_ID)
	assertEqual(t, scheme.Details.CompiledDate != "", true)
	assertEqual(t, len(scheme.Rules), len(builtin.Rules))
	assertEqual(t, len(scheme.Exceptions), len(builtin.Exceptions))

	for i, rule := range builtin.Rules {
		assertEqual(t, scheme.Rules[i].Pattern, rule.Pattern)
		assertEqual(t, scheme.Rules[i].Value1, rule.Value1)
		assertEqual(t, scheme.Rules[i].Value2, rule.Value2)
		assertEqual(t, scheme.Rules[i].Priority, rule.Priority)
		assertEqual(t, scheme.Rules[i].Context, rule.Context)
	}

	// A compiled scheme transliterates like the built-in one
	config := DefaultConfig()
	config.VSTPath = vstPath
	config.Cache.Enabled = false

	engine, err := Init(config)
	checkError(err)
	defer engine.Close()

	input := "Phone ekee battery naehae, meeka hariyanne naee appaa"
	assertEqual(t, engine.Transliterate(input), testEngine.Transliterate(input))
}

func TestLoadVSTErrors(t *testing.T) {
	_, err := LoadVST(path.Join(testTempDir, "nothing-here.vst"))
	assertEqual(t, err != nil, true)

	vstPath := path.Join(testTempDir, "old.vst")
	checkError(CompileScheme(SinglishScheme(), vstPath))

	conn, err := sql.Open("sqlite", vstPath)
	checkError(err)
	_, err = conn.Exec("PRAGMA user_version=1")
	checkError(err)
	checkError(conn.Close())

	_, err = LoadVST(vstPath)
	assertEqual(t, errors.Is(err, ErrVSTVersion), true)
}

func TestGetAllSchemeDetails(t *testing.T) {
	dir := path.Join(testTempDir, "schemes")
	checkError(os.MkdirAll(dir, 0750))

	for _, id := range []string{"si-one", "si-two"} {
		scheme := SinglishScheme()
		scheme.Details = testSchemeDetails(id)
		checkError(CompileScheme(scheme, path.Join(dir, id+".vst")))
	}

	// Not a VST
	makeFile("schemes/notes.txt", "hello")

	details, err := GetAllSchemeDetails(dir)
	checkError(err)

	assertEqual(t, len(details), 2)
	assertEqual(t, details[0].Identifier, "si-one")
	assertEqual(t, details[1].Identifier, "si-two")
}
