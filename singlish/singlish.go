package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/text/unicode/norm"
)

// Engine transliterates buffers. Everything it holds is read-only after
// Init apart from the atomic debug flag, so one engine is shared by all
// sessions and goroutines.
type Engine struct {
	rules      *RuleTable
	exceptions map[string]string
	classifier *Classifier
	mapper     *Mapper
	cache      *TokenCache

	config        Config
	SchemeDetails SchemeDetails

	// Print classified segments of every buffer
	debug atomic.Bool
}

// Init an engine. Rules come from config.VSTPath, or the built-in scheme
// when it's empty.
func Init(config Config) (*Engine, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	var (
		scheme Scheme
		err    error
	)

	if config.VSTPath != "" {
		scheme, err = LoadVST(config.VSTPath)
		if err != nil {
			return nil, fmt.Errorf("loading VST: %w", err)
		}
	} else {
		scheme = SinglishScheme()
	}

	engine := &Engine{
		config:        config,
		SchemeDetails: scheme.Details,
		exceptions:    make(map[string]string),
	}
	engine.debug.Store(config.Debug)

	engine.rules, err = NewRuleTable(scheme.Rules)
	if err != nil {
		return nil, err
	}

	for pattern, word := range scheme.Exceptions {
		engine.exceptions[pattern] = word
	}
	for pattern, word := range config.Exceptions {
		engine.exceptions[pattern] = word
	}

	engine.classifier, err = NewClassifier(engine.rules, engine.exceptions, config.Classifier)
	if err != nil {
		return nil, err
	}

	engine.mapper = NewMapper(engine.rules)

	if config.Cache.Enabled {
		engine.cache, err = NewTokenCache(config.Cache.TTL, config.Cache.MaxEntries)
		if err != nil {
			return nil, err
		}
	}

	return engine, nil
}

// InitDefault makes an engine with the built-in scheme and default config
func InitDefault() (*Engine, error) {
	return Init(DefaultConfig())
}

// InitFromID finds the scheme's VST in the lookup directories
func InitFromID(schemeID string) (*Engine, error) {
	vstPath, err := findVSTPath(schemeID)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	config.VSTPath = vstPath

	return Init(config)
}

// Tokenize a buffer
func (engine *Engine) Tokenize(buffer string) []Token {
	return Tokenize(buffer)
}

// Classify a buffer's tokens
func (engine *Engine) Classify(buffer string) []Segment {
	return engine.classifier.Classify(Tokenize(buffer))
}

// MapWord transliterates one word, ignoring classification. Exceptions
// still apply.
func (engine *Engine) MapWord(word string) string {
	if fixed, ok := engine.classifier.Exception(word); ok {
		return repairOrphanSigns(norm.NFC.String(fixed))
	}
	return engine.mapper.Map(word)
}

func (engine *Engine) render(seg Segment) string {
	switch seg.Class {
	case SINGLISH_CLASS_EXCEPTION:
		fixed, _ := engine.classifier.Exception(seg.Raw)
		return repairOrphanSigns(norm.NFC.String(fixed))

	case SINGLISH_CLASS_PHONETIC:
		if engine.cache != nil {
			if result, ok := engine.cache.Get(seg.Raw); ok {
				return result
			}
		}

		result := engine.mapper.Map(seg.Raw)

		if engine.cache != nil {
			if err := engine.cache.Set(seg.Raw, result); err != nil {
				tracer().Errorf("caching %q: %v", seg.Raw, err)
			}
		}
		return result
	}

	return seg.Raw
}

// TransliterateWithContext transliterates a buffer. The only error is
// the context's.
func (engine *Engine) TransliterateWithContext(ctx context.Context, buffer string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	start := time.Now()

	segments := engine.Classify(buffer)

	if engine.debug.Load() {
		fmt.Println(segments)
	}

	output, err := Assemble(ctx, buffer, segments, engine.render)
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return "", err
		}
		tracer().Errorf("assembling %q: %v", buffer, err)
	}

	if LOG_TIME_TAKEN {
		tracer().Infof("%s took %v", "transliteration", time.Since(start))
	}

	return output, nil
}

// SetDebug turns printing of classified segments on or off. Safe to call
// while buffers are being transliterated.
func (engine *Engine) SetDebug(on bool) {
	engine.debug.Store(on)
}

// Transliterate a buffer
func (engine *Engine) Transliterate(buffer string) string {
	output, _ := engine.TransliterateWithContext(context.Background(), buffer)
	return output
}

// NewSession starts an incremental session with the configured workers
func (engine *Engine) NewSession(ctx context.Context) *Session {
	return NewSession(ctx, engine, engine.config.Session.Workers)
}

// Close releases the token cache
func (engine *Engine) Close() error {
	if engine.cache != nil {
		return engine.cache.Close()
	}
	return nil
}
