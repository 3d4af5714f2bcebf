// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

// Package inifile reads and writes key/value configuration stored in a
// single INI file on disk.
//
// A Store is bound to one file path. It holds no file descriptor and no
// cached content: every operation re-reads the file, and every write stages
// the full rewrite into a temporary file that replaces the original by
// rename, so a failed write leaves the original untouched.
//
// The Store does no locking. Concurrent readers are safe because each read
// is an independent pass over the file, but callers must serialize writers
// (and readers racing a writer) themselves.
package inifile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/textcfg/inifile/ini"
)

// TempPrefix is prepended to the file's base name to form the staging file
// used during a rewrite. A crashed write leaves at most this file behind.
const TempPrefix = "~"

// A Store reads and writes one INI file.
type Store struct {
	path string
}

// New returns a Store bound to the INI file at path. The file does not need
// to exist yet: it is created by the first write, and reads of a missing
// file simply find no keys.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("open ini store: empty path")
	}
	return &Store{path: path}, nil
}

// Path returns the file path the store is bound to.
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the whole file. A missing file yields an empty
// document. Unlike the getters, Load surfaces I/O errors, for callers that
// need to tell a missing key from an unreadable file.
func (s *Store) Load() (*ini.File, error) {
	f, err := os.Open(s.path)
	if os.IsNotExist(err) {
		return new(ini.File), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load ini store: %w", err)
	}
	defer f.Close()
	parsed, err := ini.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("load ini store: %s: %w", s.path, err)
	}
	return parsed, nil
}

// load is the getters' read pass: any failure reads as an empty document so
// that the caller's default applies.
func (s *Store) load() *ini.File {
	f, err := s.Load()
	if err != nil {
		return new(ini.File)
	}
	return f
}

// Lookup returns the value stored under the given section and key. The
// second result reports whether the key exists, which distinguishes an
// absent key from a stored empty string. Passing an empty section name
// addresses the properties before any section header.
func (s *Store) Lookup(section, key string) (string, bool) {
	return s.load().Lookup(section, key)
}

// GetString returns the value stored under the given section and key, or def
// if the key is absent.
func (s *Store) GetString(section, key, def string) string {
	if v, ok := s.Lookup(section, key); ok {
		return v
	}
	return def
}

// GetInt64 returns the value stored under the given section and key as an
// integer, or def if the key is absent. A present value is scanned
// leniently: the longest leading decimal numeral is used and trailing text
// is ignored, so "42px" reads as 42 and "px" reads as 0.
func (s *Store) GetInt64(section, key string, def int64) int64 {
	v, ok := s.Lookup(section, key)
	if !ok {
		return def
	}
	return scanInt64(v)
}

// GetInt is GetInt64 narrowed to int.
func (s *Store) GetInt(section, key string, def int) int {
	return int(s.GetInt64(section, key, int64(def)))
}

// GetFloat64 returns the value stored under the given section and key as a
// floating-point number, or def if the key is absent. Present values are
// scanned with the same leniency as GetInt64, accepting a fraction and an
// exponent.
func (s *Store) GetFloat64(section, key string, def float64) float64 {
	v, ok := s.Lookup(section, key)
	if !ok {
		return def
	}
	return scanFloat64(v)
}

// GetBool returns the value stored under the given section and key as a
// boolean, or def if the key is absent. A value starting with 'y', 't', or
// '1' is true; one starting with 'n', 'f', or '0' is false; anything else
// falls back to def.
func (s *Store) GetBool(section, key string, def bool) bool {
	v, ok := s.Lookup(section, key)
	if !ok || v == "" {
		return def
	}
	switch v[0] {
	case 'y', 'Y', 't', 'T', '1':
		return true
	case 'n', 'N', 'f', 'F', '0':
		return false
	}
	return def
}

// SetString stores the value under the given section and key, rewriting the
// file. The section and key are created as needed; values with leading or
// trailing whitespace or embedded quotes are stored double-quoted. On error
// the file is unchanged.
func (s *Store) SetString(section, key, value string) error {
	f, err := s.Load()
	if err != nil {
		return err
	}
	f.Set(section, key, value)
	return s.commit(f)
}

// SetInt64 stores the integer in plain base-10 form.
func (s *Store) SetInt64(section, key string, value int64) error {
	return s.SetString(section, key, strconv.FormatInt(value, 10))
}

// SetInt stores the integer in plain base-10 form.
func (s *Store) SetInt(section, key string, value int) error {
	return s.SetInt64(section, key, int64(value))
}

// SetFloat64 stores the number in exponential form with the minimal number
// of digits that reads back to exactly the same value.
func (s *Store) SetFloat64(section, key string, value float64) error {
	return s.SetString(section, key, strconv.FormatFloat(value, 'e', -1, 64))
}

// SetBool stores "true" or "false".
func (s *Store) SetBool(section, key string, value bool) error {
	return s.SetString(section, key, strconv.FormatBool(value))
}

// RemoveKey deletes the key from the section, rewriting the file. Removing
// an absent key succeeds without touching the file.
func (s *Store) RemoveKey(section, key string) error {
	f, err := s.Load()
	if err != nil {
		return err
	}
	if _, ok := f.Lookup(section, key); !ok {
		return nil
	}
	f.Delete(section, key)
	return s.commit(f)
}

// RemoveSection deletes the whole section: its header lines and everything
// under them. Removing an absent section succeeds without touching the file.
func (s *Store) RemoveSection(section string) error {
	f, err := s.Load()
	if err != nil {
		return err
	}
	if !f.HasSection(section) {
		return nil
	}
	f.DeleteSection(section)
	return s.commit(f)
}

// SectionAt returns the name of the idx'th section header in the file,
// counting from zero. The second result is false once idx is past the last
// header, which terminates an enumeration loop.
func (s *Store) SectionAt(idx int) (string, bool) {
	return s.load().SectionAt(idx)
}

// KeyAt returns the idx'th key under the given section, counting from zero.
// The second result is false once idx is past the last key.
func (s *Store) KeyAt(section string, idx int) (string, bool) {
	return s.load().KeyAt(section, idx)
}

// Sections returns the section header names in file order.
func (s *Store) Sections() []string {
	return s.load().Sections()
}

// Keys returns the keys under the given section in file order.
func (s *Store) Keys(section string) []string {
	return s.load().Keys(section)
}

// commit publishes the document: it writes the serialized file to a staging
// file next to the original and renames it over the original. The rename is
// the sole commit point; on any earlier failure the staging file is removed
// and the original is untouched.
func (s *Store) commit(f *ini.File) error {
	text, err := f.MarshalText()
	if err != nil {
		return fmt.Errorf("write ini store: %w", err)
	}
	mode := os.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}
	dir, base := filepath.Split(s.path)
	tmp := filepath.Join(dir, TempPrefix+base)
	tf, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, mode)
	if err != nil {
		return fmt.Errorf("write ini store: %w", err)
	}
	if _, err := tf.Write(text); err != nil {
		tf.Close()
		os.Remove(tmp)
		return fmt.Errorf("write ini store: %w", err)
	}
	if err := tf.Close(); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write ini store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("write ini store: %w", err)
	}
	return nil
}
