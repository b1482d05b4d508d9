package singlishgo

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

/* Golang bindings for the singlish c-shared library */

// Build the library first, from the repository root:
//   go build -buildmode=c-shared -o libsinglish.so .

// #cgo CFLAGS: -I${SRCDIR}/..
// #cgo LDFLAGS: -L${SRCDIR}/.. -lsinglish
// #include "libsinglish.h"
// #include "stdlib.h"
import "C"

import (
	"context"
	"errors"
	"sync/atomic"
	"time"
	"unsafe"
)

// SinglishHandle for making things easier
type SinglishHandle struct {
	handleID C.int
}

// Session of a handle. See singlish.Session.
type Session struct {
	sessionID C.int
}

// SchemeDetails of VST
type SchemeDetails struct {
	Identifier   string
	LangCode     string
	DisplayName  string
	Author       string
	CompiledDate string
}

// SinglishError Custom error for singlish
type SinglishError struct {
	ErrorCode int
	Err       error
}

// Error mimicking error package's function
func (err *SinglishError) Error() string {
	if err.Err != nil {
		return err.Err.Error()
	}
	return ""
}

func goStringFree(cStr *C.char) string {
	goStr := C.GoString(cStr)
	C.free(unsafe.Pointer(cStr))
	return goStr
}

func lastError(handleID C.int) error {
	return errors.New(goStringFree(C.singlish_get_last_error(handleID)))
}

// Errors of calls that don't belong to a handle
func generalError() error {
	return lastError(-1)
}

func (handle *SinglishHandle) checkError(code C.int) *SinglishError {
	if code == C.SINGLISH_SUCCESS {
		return nil
	}
	return &SinglishError{
		ErrorCode: int(code),
		Err:       errors.New(handle.GetLastError()),
	}
}

func checkGeneralError(code C.int) *SinglishError {
	if code == C.SINGLISH_SUCCESS {
		return nil
	}
	return &SinglishError{
		ErrorCode: int(code),
		Err:       generalError(),
	}
}

// The handle stays registered when init fails
func initHandle(configFile string) (*SinglishHandle, error) {
	handleID := C.int(0)
	cConfigFile := C.CString(configFile)

	code := C.singlish_init(cConfigFile, unsafe.Pointer(&handleID))

	C.free(unsafe.Pointer(cConfigFile))

	handle := &SinglishHandle{handleID}
	if code != C.SINGLISH_SUCCESS {
		return handle, errors.New(handle.GetLastError())
	}
	return handle, nil
}

// Init with a YAML config file. An empty path uses the default config.
func Init(configFile string) (*SinglishHandle, error) {
	handle, err := initHandle(configFile)
	if err != nil {
		handle.Close()
		return nil, err
	}
	return handle, nil
}

// InitFromID Initialize with the VST of a scheme ID
func InitFromID(id string) (*SinglishHandle, error) {
	handleID := C.int(0)
	cID := C.CString(id)

	code := C.singlish_init_from_id(cID, unsafe.Pointer(&handleID))

	C.free(unsafe.Pointer(cID))

	handle := &SinglishHandle{handleID}
	if code != C.SINGLISH_SUCCESS {
		err := errors.New(handle.GetLastError())
		handle.Close()
		return nil, err
	}
	return handle, nil
}

// GetLastError get last error
func (handle *SinglishHandle) GetLastError() string {
	return goStringFree(C.singlish_get_last_error(handle.handleID))
}

// Close the engine and forget the handle
func (handle *SinglishHandle) Close() *SinglishError {
	return handle.checkError(C.singlish_close(handle.handleID))
}

// Debug turn debug on/off
func (handle *SinglishHandle) Debug(val bool) *SinglishError {
	if val {
		return checkGeneralError(C.singlish_debug(handle.handleID, C.int(1)))
	}
	return checkGeneralError(C.singlish_debug(handle.handleID, C.int(0)))
}

// Transliterate a buffer
func (handle *SinglishHandle) Transliterate(text string) (string, error) {
	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	cOutput := C.singlish_transliterate(handle.handleID, cText)
	if cOutput == nil {
		return "", generalError()
	}
	return goStringFree(cOutput), nil
}

type transliterationResult struct {
	output string
	ok     bool
}

func (handle *SinglishHandle) cgoTransliterate(operationID C.int, resultChannel chan<- transliterationResult, text string) {
	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	var result transliterationResult
	if cOutput := C.singlish_transliterate_with_id(handle.handleID, operationID, cText); cOutput != nil {
		result = transliterationResult{goStringFree(cOutput), true}
	}

	resultChannel <- result
	close(resultChannel)
}

var contextOperationCount int32

func cancelOperation(operationID C.int) bool {
	return C.singlish_cancel(operationID) == C.SINGLISH_SUCCESS
}

// TransliterateWithContext stops the transliteration when ctx is done
func (handle *SinglishHandle) TransliterateWithContext(ctx context.Context, text string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	operationID := C.int(atomic.AddInt32(&contextOperationCount, 1))

	// Buffered, the goroutine must not block once nobody is listening
	channel := make(chan transliterationResult, 1)

	go handle.cgoTransliterate(operationID, channel, text)

	select {
	case <-ctx.Done():
		cancelOperation(operationID)
		return "", ctx.Err()
	case result := <-channel:
		if !result.ok {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			return "", generalError()
		}
		return result.output, nil
	}
}

// NewSession opens a session on the handle's engine
func (handle *SinglishHandle) NewSession() (*Session, error) {
	sessionID := C.int(0)
	code := C.singlish_session_open(handle.handleID, unsafe.Pointer(&sessionID))
	if code != C.SINGLISH_SUCCESS {
		return nil, checkGeneralError(code)
	}
	return &Session{sessionID}, nil
}

// Submit a new snapshot of the buffer. Returns its generation.
func (session *Session) Submit(text string) (uint64, error) {
	cText := C.CString(text)
	defer C.free(unsafe.Pointer(cText))

	generation := uint64(C.singlish_session_submit(session.sessionID, cText))
	if generation == 0 {
		return 0, generalError()
	}
	return generation, nil
}

// Wait for the output of generation or a later one
func (session *Session) Wait(generation uint64, timeout time.Duration) (string, error) {
	cOutput := C.singlish_session_wait(session.sessionID, C.ulonglong(generation), C.int(timeout.Milliseconds()))
	if cOutput == nil {
		return "", generalError()
	}
	return goStringFree(cOutput), nil
}

// Latest published output and its generation. Generation 0 means nothing
// was published yet.
func (session *Session) Latest() (uint64, string) {
	generation := C.ulonglong(0)
	cOutput := C.singlish_session_latest(session.sessionID, unsafe.Pointer(&generation))
	return uint64(generation), goStringFree(cOutput)
}

// Close the session. Pending evaluations are cancelled.
func (session *Session) Close() *SinglishError {
	return checkGeneralError(C.singlish_session_close(session.sessionID))
}
