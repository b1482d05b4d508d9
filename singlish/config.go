package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"bufio"
	"errors"
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v2"
)

var (
	ErrWorkersInvalid   = errors.New("session workers must be at least 1")
	ErrCacheTTLInvalid  = errors.New("cache ttl must not be negative")
	ErrCacheSizeInvalid = errors.New("cache max-entries must not be negative")
)

// ClassifierConfig is the data the classifier decides with. Lists here are
// added to the built-in ones.
type ClassifierConfig struct {
	AllowList       []string `yaml:"allow-list"`
	Lexicon         []string `yaml:"lexicon"`
	LexiconFile     string   `yaml:"lexicon-file"`
	CurrencyMarkers []string `yaml:"currency-markers"`
	Units           []string `yaml:"units"`

	// token => phonetic, foreign or numeric
	Overrides map[string]string `yaml:"overrides"`

	DisableDefaults bool `yaml:"disable-defaults"`
}

// SessionConfig for incremental sessions
type SessionConfig struct {
	Workers int `yaml:"workers"`
}

// CacheConfig for the mapped token cache
type CacheConfig struct {
	Enabled    bool          `yaml:"enabled"`
	TTLString  string        `yaml:"ttl"`
	TTL        time.Duration `yaml:"-"`
	MaxEntries int           `yaml:"max-entries"`
}

// Config of an engine
type Config struct {
	Filename string `yaml:"-"`

	// Rules and exceptions are read from this VST instead of the
	// built-in scheme when set
	VSTPath string `yaml:"vst-path"`

	// Added to the scheme's exceptions, replacing ones with the same pattern
	Exceptions map[string]string `yaml:"exceptions"`

	Classifier ClassifierConfig `yaml:"classifier"`
	Session    SessionConfig    `yaml:"session"`
	Cache      CacheConfig      `yaml:"cache"`

	Debug bool `yaml:"debug"`
}

// DefaultConfig is what InitDefault uses
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{Workers: 2},
		Cache: CacheConfig{
			Enabled:    true,
			TTLString:  "10m",
			TTL:        10 * time.Minute,
			MaxEntries: 4096,
		},
	}
}

// LoadConfig reads a YAML config file. Missing values keep their defaults.
func LoadConfig(filename string) (*Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	config := DefaultConfig()
	err = yaml.Unmarshal(data, &config)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}

	config.Filename = filename

	if config.Cache.TTLString != "" {
		config.Cache.TTL, err = time.ParseDuration(config.Cache.TTLString)
		if err != nil {
			return nil, fmt.Errorf("could not parse cache ttl: %w", err)
		}
	}

	// Relative paths are relative to the config file
	dir := filepath.Dir(filename)
	if config.VSTPath != "" && !filepath.IsAbs(config.VSTPath) {
		config.VSTPath = filepath.Join(dir, config.VSTPath)
	}

	if config.Classifier.LexiconFile != "" {
		lexiconFile := config.Classifier.LexiconFile
		if !filepath.IsAbs(lexiconFile) {
			lexiconFile = filepath.Join(dir, lexiconFile)
		}

		words, err := readWordList(lexiconFile)
		if err != nil {
			return nil, fmt.Errorf("reading lexicon-file: %w", err)
		}
		config.Classifier.Lexicon = append(config.Classifier.Lexicon, words...)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate values a config can't work with
func (config *Config) Validate() error {
	if config.Session.Workers < 1 {
		return ErrWorkersInvalid
	}
	if config.Cache.TTL < 0 {
		return ErrCacheTTLInvalid
	}
	if config.Cache.MaxEntries < 0 {
		return ErrCacheSizeInvalid
	}

	for word, class := range config.Classifier.Overrides {
		if _, ok := classNames[strings.ToLower(class)]; !ok {
			return fmt.Errorf("override for '%s': unknown class '%s'", word, class)
		}
	}

	return nil
}

// One word per line, # starts a comment
func readWordList(filename string) ([]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var words []string

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		line = strings.TrimSpace(line)
		if line != "" {
			words = append(words, line)
		}
	}

	return words, scanner.Err()
}
