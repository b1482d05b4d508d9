package main

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

/*
#include "stdlib.h"
#include "c-shared.h"
*/
import "C"

import (
	"unsafe"

	"github.com/swiftlipi/singlish/singlish"
)

func checkError(err error) C.int {
	if err != nil {
		return C.SINGLISH_ERROR
	}
	return C.SINGLISH_SUCCESS
}

func goSchemeDetailsToC(sd singlish.SchemeDetails) *C.SchemeDetails {
	// C.CString uses malloc(), freeing is up to the caller
	return C.makeSchemeDetails(
		C.CString(sd.Identifier),
		C.CString(sd.LangCode),
		C.CString(sd.DisplayName),
		C.CString(sd.Author),
		C.CString(sd.CompiledDate),
	)
}

// A malloc'd array of scheme details pointers
func schemeDetailsArray(details []singlish.SchemeDetails) **C.SchemeDetails {
	if len(details) == 0 {
		return nil
	}

	size := C.size_t(len(details)) * C.size_t(unsafe.Sizeof(uintptr(0)))
	array := (**C.SchemeDetails)(C.malloc(size))

	items := unsafe.Slice(array, len(details))
	for i, sd := range details {
		items[i] = goSchemeDetailsToC(sd)
	}
	return array
}
