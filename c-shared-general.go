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

// VST maintenance. Errors are read with singlish_get_last_error(-1).

//export singlish_compile
func singlish_compile(vstPath *C.char) C.int {
	err := singlish.CompileScheme(singlish.SinglishScheme(), C.GoString(vstPath))
	setGeneralError(err)
	return checkError(err)
}

//export singlish_train
func singlish_train(vstPath *C.char, pattern *C.char, word *C.char) C.int {
	vm, err := singlish.VMInit(C.GoString(vstPath))
	if err != nil {
		setGeneralError(err)
		return C.SINGLISH_ERROR
	}
	defer vm.Close()

	err = vm.Train(C.GoString(pattern), C.GoString(word))
	setGeneralError(err)
	return checkError(err)
}

//export singlish_unlearn
func singlish_unlearn(vstPath *C.char, pattern *C.char) C.int {
	vm, err := singlish.VMInit(C.GoString(vstPath))
	if err != nil {
		setGeneralError(err)
		return C.SINGLISH_ERROR
	}
	defer vm.Close()

	err = vm.Unlearn(C.GoString(pattern))
	setGeneralError(err)
	return checkError(err)
}

// Details of the VSTs in dir. The number of items is written to count.
//
//export singlish_get_all_scheme_details
func singlish_get_all_scheme_details(dir *C.char, count unsafe.Pointer) **C.SchemeDetails {
	details, err := singlish.GetAllSchemeDetails(C.GoString(dir))
	setGeneralError(err)

	*(*C.int)(count) = C.int(len(details))

	if err != nil {
		return nil
	}
	return schemeDetailsArray(details)
}
