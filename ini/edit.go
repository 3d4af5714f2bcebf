// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import "strings"

// Set sets the property to the given value. Passing an empty section name
// sets the property outside any section. Set will panic if
// IsValidSection(section), IsValidKey(key), or IsValidValue(value) report
// false.
//
// If the section already has a property with the key (case-insensitively),
// the first such property line is replaced in place and its trailing comment,
// if any, is dropped. Otherwise the property is appended after the last
// property of the section's last block, or right after the header of an empty
// section. A missing section is created at the end of the file.
func (f *File) Set(section, key, value string) {
	if !IsValidSection(section) {
		panic("File.Set invalid section: " + section)
	}
	if !IsValidKey(key) {
		panic("File.Set invalid key: " + key)
	}
	if !IsValidValue(value) {
		panic("File.Set invalid value: " + value)
	}
	current := ""
	found := section == ""
	insertAfter := -1
	for i := range f.lines {
		ln := &f.lines[i]
		switch ln.kind {
		case lineSection:
			current = ln.name
			if current == section {
				found = true
				insertAfter = i
			}
		case lineProperty:
			if current != section {
				continue
			}
			if strings.EqualFold(ln.key, key) {
				f.lines[i] = propertyLine(key, value)
				return
			}
			insertAfter = i
		}
	}
	if found {
		f.insert(insertAfter+1, propertyLine(key, value))
		return
	}
	if n := len(f.lines); n > 0 && f.lines[n-1].kind != lineBlank {
		f.lines = append(f.lines, line{kind: lineBlank})
	}
	f.lines = append(f.lines, sectionLine(section), propertyLine(key, value))
}

func (f *File) insert(i int, ln line) {
	f.lines = append(f.lines, line{})
	copy(f.lines[i+1:], f.lines[i:])
	f.lines[i] = ln
}

// Delete removes every property with the given key from the given section.
// Deleting an absent key is a no-op; no other line is touched.
func (f *File) Delete(section, key string) {
	if f == nil {
		return
	}
	current := ""
	n := 0
	for i := range f.lines {
		ln := f.lines[i]
		if ln.kind == lineSection {
			current = ln.name
		}
		if ln.kind == lineProperty && current == section && strings.EqualFold(ln.key, key) {
			continue
		}
		f.lines[n] = ln
		n++
	}
	clearTail(f.lines, n)
	f.lines = f.lines[:n]
}

// DeleteSection removes every block of the given section: the header line and
// everything under it up to the next header, comments and blank lines
// included. Passing an empty section name removes everything before the first
// header. Deleting an absent section is a no-op.
func (f *File) DeleteSection(section string) {
	if f == nil {
		return
	}
	current := ""
	n := 0
	for i := range f.lines {
		ln := f.lines[i]
		if ln.kind == lineSection {
			current = ln.name
		}
		if current == section {
			continue
		}
		f.lines[n] = ln
		n++
	}
	clearTail(f.lines, n)
	f.lines = f.lines[:n]
}

// clearTail zeroes truncated elements for garbage collection.
func clearTail(lines []line, n int) {
	for i := n; i < len(lines); i++ {
		lines[i] = line{}
	}
}

func sectionLine(name string) line {
	return line{kind: lineSection, raw: "[" + name + "]", name: name}
}

func propertyLine(key, value string) line {
	raw := key + "="
	if shouldQuoteValue(value) {
		raw = appendQuotedValue(raw, value)
	} else {
		raw += value
	}
	return line{kind: lineProperty, raw: raw, key: key, value: value}
}

// shouldQuoteValue reports whether a value must be wrapped in double quotes
// to survive a reparse: values with leading or trailing whitespace, embedded
// quotes, or characters that would start a trailing comment.
func shouldQuoteValue(v string) bool {
	if v == "" {
		return false
	}
	if strings.TrimSpace(v) != v {
		return true
	}
	return strings.ContainsAny(v, `"#;`)
}

func appendQuotedValue(dst string, v string) string {
	sb := new(strings.Builder)
	sb.Grow(len(dst) + len(v) + 2)
	sb.WriteString(dst)
	sb.WriteByte('"')
	for i := 0; i < len(v); i++ {
		if v[i] == '"' || v[i] == '\\' {
			sb.WriteByte('\\')
		}
		sb.WriteByte(v[i])
	}
	sb.WriteByte('"')
	return sb.String()
}

// IsValidSection reports whether a string can be used as a section name.
// Names may contain interior whitespace but not brackets or line breaks.
func IsValidSection(name string) bool {
	// Special case: empty string is the global section.
	return !strings.ContainsAny(name, "[]\r\n")
}

// IsValidKey reports whether a string can be used as a property key.
func IsValidKey(key string) bool {
	if key == "" {
		return false
	}
	if key != strings.TrimSpace(key) {
		return false
	}
	if key[0] == '[' || key[0] == ']' || key[0] == ';' || key[0] == '#' {
		return false
	}
	return !strings.ContainsAny(key, "=:\r\n")
}

// IsValidValue reports whether a string can be stored as a property value.
// Values are single-line: quoting protects whitespace and quote characters,
// but there is no escape for a line break.
func IsValidValue(value string) bool {
	return !strings.ContainsAny(value, "\r\n")
}
