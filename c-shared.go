package main

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

/* For c-shared library */

/*
#include "stdlib.h"
#include "c-shared.h"
*/
import "C"
import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
	"unsafe"

	"github.com/swiftlipi/singlish/singlish"
)

var generalError error

var errNoEngine = errors.New("handle has no engine, init failed")

var backgroundContext = context.Background()
var cancelFuncs = map[C.int]context.CancelFunc{}
var cancelFuncsMapMutex = sync.Mutex{}

type engineHandle struct {
	engine *singlish.Engine
	err    error
}

// For storing engine instances and their sessions
var handles = map[C.int]*engineHandle{}
var sessions = map[C.int]*singlish.Session{}
var handlesMutex = sync.RWMutex{}
var lastHandleID, lastSessionID C.int

func storeHandle(engine *singlish.Engine, err error, id unsafe.Pointer) C.int {
	handlesMutex.Lock()
	lastHandleID++
	handleID := lastHandleID
	handles[handleID] = &engineHandle{engine, err}
	handlesMutex.Unlock()

	*(*C.int)(id) = handleID

	if err != nil {
		setGeneralError(err)
	}
	return checkError(err)
}

//export singlish_init
func singlish_init(configFile *C.char, id unsafe.Pointer) C.int {
	config := singlish.DefaultConfig()

	if filename := C.GoString(configFile); filename != "" {
		loaded, err := singlish.LoadConfig(filename)
		if err != nil {
			return storeHandle(nil, err, id)
		}
		config = *loaded
	}

	engine, err := singlish.Init(config)
	return storeHandle(engine, err, id)
}

//export singlish_init_from_id
func singlish_init_from_id(schemeID *C.char, id unsafe.Pointer) C.int {
	engine, err := singlish.InitFromID(C.GoString(schemeID))
	return storeHandle(engine, err, id)
}

func setHandleError(handle *engineHandle, err error) {
	handlesMutex.Lock()
	handle.err = err
	handlesMutex.Unlock()
}

// Engine of a handle, nil when its init failed. The general error is set
// in that case.
func getEngine(id C.int) *singlish.Engine {
	handle := getHandle(id)
	if handle.engine == nil {
		setGeneralError(errNoEngine)
		return nil
	}
	return handle.engine
}

func setGeneralError(err error) {
	handlesMutex.Lock()
	generalError = err
	handlesMutex.Unlock()
}

func getHandle(id C.int) *engineHandle {
	handlesMutex.RLock()
	defer handlesMutex.RUnlock()
	if handle, ok := handles[id]; ok {
		return handle
	}
	log.Fatal("Singlish handle not found")
	return &engineHandle{}
}

//export singlish_close
func singlish_close(handleID C.int) C.int {
	handle := getHandle(handleID)
	if handle.engine != nil {
		if err := handle.engine.Close(); err != nil {
			setHandleError(handle, err)
			return checkError(err)
		}
	}

	handlesMutex.Lock()
	delete(handles, handleID)
	handlesMutex.Unlock()

	return C.SINGLISH_SUCCESS
}

//export singlish_transliterate
func singlish_transliterate(handleID C.int, buffer *C.char) *C.char {
	engine := getEngine(handleID)
	if engine == nil {
		return nil
	}
	return C.CString(engine.Transliterate(C.GoString(buffer)))
}

// Returns NULL when cancelled with singlish_cancel
//
//export singlish_transliterate_with_id
func singlish_transliterate_with_id(handleID C.int, id C.int, buffer *C.char) *C.char {
	handle := getHandle(handleID)
	if handle.engine == nil {
		setGeneralError(errNoEngine)
		return nil
	}

	ctx, cancel := context.WithCancel(backgroundContext)
	defer cancel()

	cancelFuncsMapMutex.Lock()
	cancelFuncs[id] = cancel
	cancelFuncsMapMutex.Unlock()

	defer func() {
		cancelFuncsMapMutex.Lock()
		delete(cancelFuncs, id)
		cancelFuncsMapMutex.Unlock()
	}()

	output, err := handle.engine.TransliterateWithContext(ctx, C.GoString(buffer))
	if err != nil {
		setHandleError(handle, err)
		return nil
	}
	return C.CString(output)
}

//export singlish_cancel
func singlish_cancel(id C.int) C.int {
	cancelFuncsMapMutex.Lock()
	defer cancelFuncsMapMutex.Unlock()

	cancel, ok := cancelFuncs[id]
	if !ok {
		return C.SINGLISH_ERROR
	}
	cancel()
	delete(cancelFuncs, id)
	return C.SINGLISH_SUCCESS
}

//export singlish_debug
func singlish_debug(handleID C.int, val C.int) C.int {
	engine := getEngine(handleID)
	if engine == nil {
		return C.SINGLISH_ERROR
	}

	engine.SetDebug(val != 0)

	return C.SINGLISH_SUCCESS
}

//export singlish_session_open
func singlish_session_open(handleID C.int, id unsafe.Pointer) C.int {
	engine := getEngine(handleID)
	if engine == nil {
		return C.SINGLISH_ERROR
	}

	session := engine.NewSession(backgroundContext)

	handlesMutex.Lock()
	lastSessionID++
	sessionID := lastSessionID
	sessions[sessionID] = session
	handlesMutex.Unlock()

	*(*C.int)(id) = sessionID
	return C.SINGLISH_SUCCESS
}

func getSession(id C.int) *singlish.Session {
	handlesMutex.RLock()
	defer handlesMutex.RUnlock()
	if session, ok := sessions[id]; ok {
		return session
	}
	log.Fatal("Singlish session not found")
	return nil
}

// Returns the generation of the snapshot, 0 on error
//
//export singlish_session_submit
func singlish_session_submit(sessionID C.int, buffer *C.char) C.ulonglong {
	g, err := getSession(sessionID).Submit(C.GoString(buffer))
	if err != nil {
		setGeneralError(err)
		return 0
	}
	return C.ulonglong(g)
}

// Blocks until the generation or a later one is published. Returns NULL
// after timeoutMs milliseconds or when the session is closed.
//
//export singlish_session_wait
func singlish_session_wait(sessionID C.int, generation C.ulonglong, timeoutMs C.int) *C.char {
	ctx, cancel := context.WithTimeout(backgroundContext, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	output, err := getSession(sessionID).Wait(ctx, singlish.Generation(generation))
	if err != nil {
		setGeneralError(err)
		return nil
	}
	return C.CString(output)
}

//export singlish_session_latest
func singlish_session_latest(sessionID C.int, generation unsafe.Pointer) *C.char {
	g, output := getSession(sessionID).Latest()
	if generation != nil {
		*(*C.ulonglong)(generation) = C.ulonglong(g)
	}
	return C.CString(output)
}

//export singlish_session_close
func singlish_session_close(sessionID C.int) C.int {
	err := getSession(sessionID).Close()

	handlesMutex.Lock()
	delete(sessions, sessionID)
	handlesMutex.Unlock()

	if err != nil {
		setGeneralError(err)
	}
	return checkError(err)
}

//export singlish_get_last_error
func singlish_get_last_error(handleID C.int) *C.char {
	var err error

	if handleID == -1 {
		handlesMutex.RLock()
		err = generalError
		handlesMutex.RUnlock()
	} else {
		handle := getHandle(handleID)
		handlesMutex.RLock()
		err = handle.err
		handlesMutex.RUnlock()
	}

	if err != nil {
		return C.CString(err.Error())
	}
	return C.CString("")
}

func main() {}
