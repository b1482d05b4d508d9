package singlish

/**
 * singlish - A Singlish to Sinhala transliteration library
 * Copyright Subin Siby <mail at subinsb (.) com>, 2021
 * Licensed under AGPL-3.0-only. See LICENSE.txt
 */

import (
	"context"
	sql "database/sql"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	// sqlite
	_ "modernc.org/sqlite"
)

// VST = Singlish Symbol Table. An sqlite file with the rules, the
// exception dictionary and scheme metadata.

var (
	// ErrVSTLocked is returned when another maker is writing the VST
	ErrVSTLocked = errors.New("couldn't acquire VST lock (is another maker running?)")

	// ErrVSTVersion is returned for VSTs made with another schema version
	ErrVSTVersion = errors.New("unsupported VST schema version")
)

// VSTMaker writes a VST. Only one maker can have a VST open at a time.
type VSTMaker struct {
	conn *sql.DB
	lock *flock.Flock
	tx   *sql.Tx

	path string

	// Skip tokens that are already in the VST instead of failing
	IgnoreDuplicateTokens bool
}

type dbQuerier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func openDB(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// Writes are buffered in a transaction on one connection
	conn.SetMaxOpenConns(1)
	return conn, nil
}

func tryAcquireLock(path string) (*flock.Flock, error) {
	lock := flock.New(path)
	success, err := lock.TryLock()
	if err != nil {
		return nil, err
	} else if !success {
		return nil, ErrVSTLocked
	}
	return lock, nil
}

// VMInit opens a VST for writing. It is created if it doesn't exist.
func VMInit(vstPath string) (*VSTMaker, error) {
	lock, err := tryAcquireLock(vstPath + ".lock")
	if err != nil {
		return nil, err
	}

	conn, err := openDB(vstPath)
	if err != nil {
		lock.Unlock()
		return nil, err
	}

	vm := &VSTMaker{conn: conn, lock: lock, path: vstPath}

	err = vm.ensureSchemaExists()
	if err != nil {
		vm.Close()
		return nil, fmt.Errorf("creating VST schema: %w", err)
	}

	return vm, nil
}

func (vm *VSTMaker) ensureSchemaExists() error {
	queries := []string{
		`
		create table if not exists metadata (key TEXT UNIQUE, value TEXT);
		`,
		`
		create table if not exists symbols (id INTEGER PRIMARY KEY AUTOINCREMENT, type INTEGER, pattern TEXT, value1 TEXT, value2 TEXT, tag TEXT, priority INTEGER DEFAULT 0, accept_condition INTEGER DEFAULT 0, context INTEGER DEFAULT 0);
		`,
		`
		create table if not exists exceptions (pattern TEXT PRIMARY KEY, word TEXT, learned_on INTEGER);
		`,
		`
		create index if not exists index_pattern on symbols (pattern);
		`}

	for _, query := range queries {
		err := vm.exec(query)
		if err != nil {
			return err
		}
	}

	return nil
}

func (vm *VSTMaker) db() dbQuerier {
	if vm.tx != nil {
		return vm.tx
	}
	return vm.conn
}

func (vm *VSTMaker) exec(query string, args ...interface{}) error {
	ctx, cancelFunc := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelFunc()

	_, err := vm.db().ExecContext(ctx, query, args...)
	return err
}

func (vm *VSTMaker) startBuffering() error {
	if vm.tx != nil {
		return nil
	}

	tx, err := vm.conn.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	vm.tx = tx
	return nil
}

func (vm *VSTMaker) flushChanges() error {
	if vm.tx == nil {
		return nil
	}

	tracer().Infof("writing changes to %s", vm.path)
	err := vm.tx.Commit()
	vm.tx = nil
	if err != nil {
		return fmt.Errorf("failed to flush changes: %w", err)
	}

	tracer().Infof("compacting %s", vm.path)
	_, err = vm.conn.Exec("VACUUM")
	if err != nil {
		return fmt.Errorf("failed to compact db: %w", err)
	}

	return nil
}

// Something went wrong, throw away everything since the last flush
func (vm *VSTMaker) discardChanges() {
	if vm.tx == nil {
		return
	}
	vm.tx.Rollback()
	vm.tx = nil
}

func (vm *VSTMaker) stampVersion() error {
	return vm.exec(fmt.Sprintf("PRAGMA user_version=%d", SINGLISH_SCHEMA_SYMBOLS_VERSION))
}

func (vm *VSTMaker) alreadyPersisted(rule Rule) (bool, error) {
	ctx, cancelFunc := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelFunc()

	var count int
	err := vm.db().QueryRowContext(ctx,
		"SELECT COUNT(*) FROM symbols WHERE pattern = ? AND priority = ? AND accept_condition = ? AND context = ?",
		rule.Pattern, rule.Priority, rule.AcceptCondition, rule.Context).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// CreateToken adds a rule. With buffered the write is kept in a
// transaction until FlushBuffer.
func (vm *VSTMaker) CreateToken(rule Rule, buffered bool) error {
	if err := validateRule(rule); err != nil {
		return err
	}

	if buffered {
		if err := vm.startBuffering(); err != nil {
			return err
		}
	}

	persisted, err := vm.alreadyPersisted(rule)
	if err != nil {
		vm.discardChanges()
		return err
	}

	if persisted {
		if vm.IgnoreDuplicateTokens {
			tracer().Infof("%s => %s is already available. Ignoring duplicate tokens", rule.Pattern, rule.Value1)
			return nil
		}
		vm.discardChanges()
		return fmt.Errorf("%w: there is already a match available for '%s => %s'", ErrDuplicateRule, rule.Pattern, rule.Value1)
	}

	err = vm.exec(
		"INSERT INTO symbols (type, pattern, value1, value2, tag, priority, accept_condition, context) VALUES (?, ?, ?, ?, ?, ?, ?, ?)",
		rule.Type, rule.Pattern, rule.Value1, rule.Value2, rule.Tag, rule.Priority, rule.AcceptCondition, rule.Context)
	if err != nil {
		vm.discardChanges()
		return fmt.Errorf("failed to persist token: %w", err)
	}

	if !buffered {
		return vm.stampVersion()
	}
	return nil
}

// DeleteToken removes rules of a pattern. symbolType 0 removes all types.
func (vm *VSTMaker) DeleteToken(pattern string, symbolType int) error {
	if pattern == "" {
		return fmt.Errorf("pattern must be specified for removal")
	}

	query := "DELETE FROM symbols WHERE pattern = ?"
	values := []interface{}{pattern}

	if symbolType > 0 {
		query += " AND type = ?"
		values = append(values, symbolType)
	}

	ctx, cancelFunc := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelFunc()

	result, err := vm.db().ExecContext(ctx, query, values...)
	if err != nil {
		return fmt.Errorf("failed to remove tokens: %w", err)
	}

	rowsAffected, _ := result.RowsAffected()
	tracer().Infof("removed %d tokens for '%s'", rowsAffected, pattern)

	return nil
}

// Train sets the fixed output of a word. It replaces an earlier one.
func (vm *VSTMaker) Train(pattern string, word string) error {
	if pattern == "" || word == "" {
		return fmt.Errorf("pattern or word is empty")
	}

	err := vm.exec("INSERT OR REPLACE INTO exceptions (pattern, word, learned_on) VALUES (?, ?, ?)", pattern, word, time.Now().UTC().Unix())
	if err != nil {
		vm.discardChanges()
		return fmt.Errorf("failed to train '%s': %w", pattern, err)
	}

	tracer().Infof("trained %s => %s", pattern, word)

	if vm.tx == nil {
		return vm.stampVersion()
	}
	return nil
}

// Unlearn removes a trained word
func (vm *VSTMaker) Unlearn(pattern string) error {
	return vm.exec("DELETE FROM exceptions WHERE pattern = ?", pattern)
}

func (vm *VSTMaker) addMetadata(key string, value string) error {
	return vm.exec("INSERT OR REPLACE INTO metadata (key, value) VALUES (?, ?)", key, value)
}

// SetSchemeDetails set scheme details
func (vm *VSTMaker) SetSchemeDetails(sd SchemeDetails) error {
	if len(sd.LangCode) != 2 {
		return fmt.Errorf("language code should be one of ISO 639-1 two letter codes")
	}

	type item struct {
		name  string
		key   string
		value string
	}

	items := []item{
		{"language code", SINGLISH_METADATA_SCHEME_LANGUAGE_CODE, sd.LangCode},
		{"scheme identifier", SINGLISH_METADATA_SCHEME_IDENTIFIER, sd.Identifier},
		{"scheme display name", SINGLISH_METADATA_SCHEME_DISPLAY_NAME, sd.DisplayName},
		{"author", SINGLISH_METADATA_SCHEME_AUTHOR, sd.Author},
		{"compiled date", SINGLISH_METADATA_SCHEME_COMPILED_DATE, sd.CompiledDate},
	}

	for _, o := range items {
		err := vm.addMetadata(o.key, o.value)
		if err != nil {
			return err
		}
		tracer().Debugf("set %s to: %s", o.name, o.value)
	}

	return nil
}

// FlushBuffer writes buffered changes to the file
func (vm *VSTMaker) FlushBuffer() error {
	err := vm.stampVersion()
	if err != nil {
		return err
	}

	return vm.flushChanges()
}

// Close the VST. Changes not flushed are lost.
func (vm *VSTMaker) Close() error {
	vm.discardChanges()
	err := vm.conn.Close()
	vm.lock.Unlock()
	return err
}

// CompileScheme writes a whole scheme to a VST file
func CompileScheme(scheme Scheme, vstPath string) error {
	vm, err := VMInit(vstPath)
	if err != nil {
		return err
	}
	defer vm.Close()

	for _, rule := range scheme.Rules {
		err = vm.CreateToken(rule, true)
		if err != nil {
			return err
		}
	}

	for pattern, word := range scheme.Exceptions {
		err = vm.Train(pattern, word)
		if err != nil {
			return err
		}
	}

	details := scheme.Details
	if details.CompiledDate == "" {
		details.CompiledDate = time.Now().UTC().Format(time.RFC3339)
	}

	err = vm.SetSchemeDetails(details)
	if err != nil {
		vm.discardChanges()
		return err
	}

	err = vm.FlushBuffer()
	if err != nil {
		return err
	}

	tracer().Infof("compiled %d rules and %d exceptions to %s", len(scheme.Rules), len(scheme.Exceptions), vstPath)

	return nil
}

// LoadVST reads a scheme from a VST file
func LoadVST(vstPath string) (Scheme, error) {
	var scheme Scheme

	if !fileExists(vstPath) {
		return scheme, fmt.Errorf("VST %s doesn't exist", vstPath)
	}

	conn, err := openDB(vstPath)
	if err != nil {
		return scheme, err
	}
	defer conn.Close()

	var version int
	err = conn.QueryRow("PRAGMA user_version").Scan(&version)
	if err != nil {
		return scheme, err
	}
	if version != SINGLISH_SCHEMA_SYMBOLS_VERSION {
		return scheme, fmt.Errorf("%w: %s has %d, expected %d", ErrVSTVersion, vstPath, version, SINGLISH_SCHEMA_SYMBOLS_VERSION)
	}

	scheme.Details, err = readSchemeDetails(conn)
	if err != nil {
		return scheme, err
	}

	rows, err := conn.Query("SELECT id, type, pattern, value1, value2, tag, priority, accept_condition, context FROM symbols ORDER BY id")
	if err != nil {
		return scheme, err
	}
	defer rows.Close()

	for rows.Next() {
		var rule Rule
		err := rows.Scan(&rule.Identifier, &rule.Type, &rule.Pattern, &rule.Value1, &rule.Value2, &rule.Tag, &rule.Priority, &rule.AcceptCondition, &rule.Context)
		if err != nil {
			return scheme, err
		}
		scheme.Rules = append(scheme.Rules, rule)
	}
	if err := rows.Err(); err != nil {
		return scheme, err
	}

	exceptionRows, err := conn.Query("SELECT pattern, word FROM exceptions")
	if err != nil {
		return scheme, err
	}
	defer exceptionRows.Close()

	scheme.Exceptions = make(map[string]string)
	for exceptionRows.Next() {
		var pattern, word string
		err := exceptionRows.Scan(&pattern, &word)
		if err != nil {
			return scheme, err
		}
		scheme.Exceptions[pattern] = word
	}
	if err := exceptionRows.Err(); err != nil {
		return scheme, err
	}

	tracer().Infof("loaded %d rules and %d exceptions from %s", len(scheme.Rules), len(scheme.Exceptions), vstPath)

	return scheme, nil
}

func readSchemeDetails(conn *sql.DB) (SchemeDetails, error) {
	var sd SchemeDetails

	rows, err := conn.Query("SELECT key, value FROM metadata")
	if err != nil {
		return sd, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			key   string
			value string
		)
		if err := rows.Scan(&key, &value); err != nil {
			return sd, err
		}
		switch key {
		case SINGLISH_METADATA_SCHEME_IDENTIFIER:
			sd.Identifier = value
		case SINGLISH_METADATA_SCHEME_LANGUAGE_CODE:
			sd.LangCode = value
		case SINGLISH_METADATA_SCHEME_DISPLAY_NAME:
			sd.DisplayName = value
		case SINGLISH_METADATA_SCHEME_AUTHOR:
			sd.Author = value
		case SINGLISH_METADATA_SCHEME_COMPILED_DATE:
			sd.CompiledDate = value
		}
	}

	return sd, rows.Err()
}

// GetAllSchemeDetails of the VSTs in a directory
func GetAllSchemeDetails(dir string) ([]SchemeDetails, error) {
	var schemeDetails []SchemeDetails

	err := filepath.WalkDir(dir, func(s string, d fs.DirEntry, e error) error {
		if e != nil {
			return e
		}
		if d.IsDir() || filepath.Ext(d.Name()) != ".vst" {
			return nil
		}

		scheme, err := LoadVST(s)
		if err != nil {
			tracer().Errorf("skipping %s: %v", s, err)
			return nil
		}
		schemeDetails = append(schemeDetails, scheme.Details)
		return nil
	})

	return schemeDetails, err
}
