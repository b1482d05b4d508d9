package singlishgo

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

// #include "libsinglish.h"
// #include "stdlib.h"
import "C"

import (
	"unsafe"
)

// Compile the built-in scheme to a VST
func Compile(vstPath string) *SinglishError {
	cVSTPath := C.CString(vstPath)
	defer C.free(unsafe.Pointer(cVSTPath))

	return checkGeneralError(C.singlish_compile(cVSTPath))
}

// Train a pattern => word into a VST
func Train(vstPath string, pattern string, word string) *SinglishError {
	cVSTPath := C.CString(vstPath)
	cPattern := C.CString(pattern)
	cWord := C.CString(word)

	code := C.singlish_train(cVSTPath, cPattern, cWord)

	C.free(unsafe.Pointer(cVSTPath))
	C.free(unsafe.Pointer(cPattern))
	C.free(unsafe.Pointer(cWord))

	return checkGeneralError(code)
}

// Unlearn a trained pattern from a VST
func Unlearn(vstPath string, pattern string) *SinglishError {
	cVSTPath := C.CString(vstPath)
	cPattern := C.CString(pattern)

	code := C.singlish_unlearn(cVSTPath, cPattern)

	C.free(unsafe.Pointer(cVSTPath))
	C.free(unsafe.Pointer(cPattern))

	return checkGeneralError(code)
}

// GetAllSchemeDetails of the VSTs in dir
func GetAllSchemeDetails(dir string) ([]SchemeDetails, *SinglishError) {
	cDir := C.CString(dir)
	defer C.free(unsafe.Pointer(cDir))

	count := C.int(0)
	cSchemeDetails := C.singlish_get_all_scheme_details(cDir, unsafe.Pointer(&count))

	if cSchemeDetails == nil {
		if err := generalError(); err.Error() != "" {
			return nil, &SinglishError{int(C.SINGLISH_ERROR), err}
		}
		return nil, nil
	}
	defer C.free(unsafe.Pointer(cSchemeDetails))

	var schemeDetails []SchemeDetails
	for _, cSD := range unsafe.Slice(cSchemeDetails, int(count)) {
		sd := SchemeDetails{
			goStringFree(cSD.Identifier),
			goStringFree(cSD.LangCode),
			goStringFree(cSD.DisplayName),
			goStringFree(cSD.Author),
			goStringFree(cSD.CompiledDate),
		}
		C.free(unsafe.Pointer(cSD))

		schemeDetails = append(schemeDetails, sd)
	}

	return schemeDetails, nil
}
