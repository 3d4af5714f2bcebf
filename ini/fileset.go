// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"fmt"
	"os"
)

// FileSet is a list of files to obtain configuration from in descending
// order of precedence.
type FileSet []*File

// ParseFiles parses the files at the given paths as INI and returns a
// FileSet. If the returned error is nil, the returned file set's length will
// be the same as the number of arguments. ParseFiles stops on the first
// error, but ignores missing file errors, instead filling the corresponding
// element of the set with a nil *File.
func ParseFiles(paths ...string) (FileSet, error) {
	fset := make(FileSet, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if os.IsNotExist(err) {
			fset = append(fset, nil)
			continue
		}
		if err != nil {
			return fset, fmt.Errorf("parse ini files: %w", err)
		}
		parsed, err := Parse(f)
		f.Close() // Close errors irrelevant.
		if err != nil {
			return fset, fmt.Errorf("parse ini files: %s: %w", p, err)
		}
		fset = append(fset, parsed)
	}
	return fset, nil
}

// Lookup returns the value from the first file in the set that has a
// property matching the given section and key. Nil files are skipped.
func (fset FileSet) Lookup(section, key string) (string, bool) {
	for _, f := range fset {
		if v, ok := f.Lookup(section, key); ok {
			return v, true
		}
	}
	return "", false
}

// Get is like Lookup but returns the empty string for an absent key.
func (fset FileSet) Get(section, key string) string {
	v, _ := fset.Lookup(section, key)
	return v
}

// Sections returns the section names from every file in the set, in file
// order, with duplicates removed.
func (fset FileSet) Sections() []string {
	var names []string
	seen := make(map[string]struct{})
	for _, f := range fset {
		for _, name := range f.Sections() {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

// Set sets the property on the first file and deletes the property from all
// subsequent files, so that the new value takes precedence no matter which
// file defined it before. Set panics if len(fset) == 0. If fset[0] == nil,
// Set allocates a new File. Any other nil files in the set are ignored.
func (fset FileSet) Set(section, key, value string) {
	if fset[0] == nil {
		fset[0] = new(File)
	}
	fset[0].Set(section, key, value)
	fset[1:].Delete(section, key)
}

// Delete removes every property with the given key in the given section from
// every file in the set. Nil elements of the set are ignored.
func (fset FileSet) Delete(section, key string) {
	for _, f := range fset {
		if f != nil {
			f.Delete(section, key)
		}
	}
}
