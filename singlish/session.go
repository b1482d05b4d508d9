package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
)

// ErrSessionClosed is returned by a closed session
var ErrSessionClosed = errors.New("session is closed")

// Generation identifies a submitted buffer. Later submissions have
// greater generations.
type Generation uint64

// Evaluation of one buffer snapshot
type Evaluation struct {
	Generation Generation
	Buffer     string
	Result     string
}

// Session re-evaluates the whole buffer on every edit and publishes only
// results newer than anything published before. Superseded evaluations
// are cancelled and their results dropped.
type Session struct {
	engine *Engine

	ctx    context.Context
	cancel context.CancelFunc

	generation atomic.Uint64
	published  atomic.Uint64

	// Bounds the evaluations running at once
	workers chan struct{}
	wg      sync.WaitGroup

	mu          sync.Mutex
	closed      bool
	cancelLast  context.CancelFunc
	latest      Evaluation
	changed     chan struct{}
	subscribers map[int]func(output string)
	nextID      int

	// Callbacks run one at a time in generation order
	deliverMu    sync.Mutex
	deliveredGen Generation
}

// NewSession starts a session. It ends when ctx is done or Close is called.
func NewSession(ctx context.Context, engine *Engine, workers int) *Session {
	if workers < 1 {
		workers = 1
	}

	s := &Session{
		engine:      engine,
		workers:     make(chan struct{}, workers),
		changed:     make(chan struct{}),
		subscribers: make(map[int]func(string)),
	}
	s.ctx, s.cancel = context.WithCancel(ctx)

	return s
}

// Submit a new buffer snapshot. Evaluations of earlier snapshots still
// running are cancelled.
func (s *Session) Submit(buffer string) (Generation, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return 0, ErrSessionClosed
	}

	g := Generation(s.generation.Add(1))

	if s.cancelLast != nil {
		s.cancelLast()
	}
	ctx, cancel := context.WithCancel(s.ctx)
	s.cancelLast = cancel

	s.wg.Add(1)
	s.mu.Unlock()

	go s.evaluate(ctx, cancel, Evaluation{Generation: g, Buffer: buffer})

	return g, nil
}

func (s *Session) evaluate(ctx context.Context, cancel context.CancelFunc, eval Evaluation) {
	defer s.wg.Done()
	defer cancel()

	select {
	case <-ctx.Done():
		tracer().Debugf("generation %d superseded before it started", eval.Generation)
		return
	case s.workers <- struct{}{}:
	}
	defer func() { <-s.workers }()

	var err error
	eval.Result, err = s.engine.TransliterateWithContext(ctx, eval.Buffer)
	if err != nil {
		tracer().Debugf("generation %d discarded: %v", eval.Generation, err)
		return
	}

	s.publish(eval)
}

func (s *Session) publish(eval Evaluation) {
	g := uint64(eval.Generation)
	for {
		current := s.published.Load()
		if g <= current {
			tracer().Debugf("generation %d discarded, %d is already published", g, current)
			return
		}
		if s.published.CompareAndSwap(current, g) {
			break
		}
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if eval.Generation > s.latest.Generation {
		s.latest = eval
	}
	close(s.changed)
	s.changed = make(chan struct{})

	callbacks := make([]func(string), 0, len(s.subscribers))
	for _, cb := range s.subscribers {
		callbacks = append(callbacks, cb)
	}
	s.mu.Unlock()

	s.deliverMu.Lock()
	defer s.deliverMu.Unlock()

	// A newer generation got delivered while this one waited
	if eval.Generation <= s.deliveredGen {
		return
	}
	s.deliveredGen = eval.Generation

	for _, cb := range callbacks {
		cb(eval.Result)
	}
}

// Subscribe to published outputs. The returned function unsubscribes.
func (s *Session) Subscribe(cb func(output string)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subscribers[id] = cb

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subscribers, id)
	}
}

// Latest published generation and its output
func (s *Session) Latest() (Generation, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.latest.Generation, s.latest.Result
}

// Wait until generation g or a later one is published and return its output
func (s *Session) Wait(ctx context.Context, g Generation) (string, error) {
	for {
		s.mu.Lock()
		if s.latest.Generation >= g {
			output := s.latest.Result
			s.mu.Unlock()
			return output, nil
		}
		if s.closed {
			s.mu.Unlock()
			return "", ErrSessionClosed
		}
		changed := s.changed
		s.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
}

// Close cancels running evaluations and waits for them to stop
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.cancel()
	close(s.changed)
	s.changed = make(chan struct{})
	s.mu.Unlock()

	s.wg.Wait()
	return nil
}
