package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"fmt"
	"os"
	"path"
)

/* General */
const ZWJ = "\u200d"
const VIRAMA = "\u0dca"

// Carrier inserted in front of a modifier that has nothing to attach to
const DEFAULT_CARRIER = "\u0d85" // අ

/* Type of symbols in the rule table */
const SINGLISH_SYMBOL_VOWEL = 1
const SINGLISH_SYMBOL_CONSONANT = 2
const SINGLISH_SYMBOL_CONJUNCT = 3 // rakaransaya, yansaya
const SINGLISH_SYMBOL_ANUSVARA = 4
const SINGLISH_SYMBOL_VISARGA = 5

/* Token acceptance rules */
const SINGLISH_TOKEN_ACCEPT_ALL = 0
const SINGLISH_TOKEN_ACCEPT_IF_STARTS_WITH = 1
const SINGLISH_TOKEN_ACCEPT_IF_IN_BETWEEN = 2
const SINGLISH_TOKEN_ACCEPT_IF_ENDS_WITH = 3

/* Mapper state a rule requires */
const SINGLISH_CONTEXT_ANY = 0
const SINGLISH_CONTEXT_AFTER_CONSONANT = 1
const SINGLISH_CONTEXT_NOT_AFTER_CONSONANT = 2

// SINGLISH_SYMBOL_MAX maximum byte length of a pattern or value
const SINGLISH_SYMBOL_MAX = 30

// SINGLISH_SCHEMA_SYMBOLS_VERSION stamped into VST files as user_version
const SINGLISH_SCHEMA_SYMBOLS_VERSION = 20230101

/* VST metadata keys */
const SINGLISH_METADATA_SCHEME_IDENTIFIER = "scheme-id"
const SINGLISH_METADATA_SCHEME_LANGUAGE_CODE = "lang-code"
const SINGLISH_METADATA_SCHEME_DISPLAY_NAME = "scheme-display-name"
const SINGLISH_METADATA_SCHEME_AUTHOR = "scheme-author"
const SINGLISH_METADATA_SCHEME_COMPILED_DATE = "scheme-compiled-date"

// SINGLISH_VST_DIR VST lookup directories according to priority
var SINGLISH_VST_DIR = [2]string{
	"schemes",
	"/usr/local/share/singlish/vst"}

func findVSTPath(schemeID string) (string, error) {
	if dir := os.Getenv("SINGLISH_VST_DIR"); dir != "" {
		temp := path.Join(dir, schemeID+".vst")
		if fileExists(temp) {
			return temp, nil
		}
	}
	for _, loc := range SINGLISH_VST_DIR {
		temp := path.Join(loc, schemeID+".vst")
		if fileExists(temp) {
			return temp, nil
		}
	}
	return "", fmt.Errorf("couldn't find VST for %s", schemeID)
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	if os.IsNotExist(err) {
		return false
	}
	return err == nil && !info.IsDir()
}

var LOG_TIME_TAKEN = false
