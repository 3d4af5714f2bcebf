// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

package ini

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A File is the parsed form of a single INI document. The zero value is an
// empty file. A File remembers every physical line it was parsed from, so
// lines that are not touched by an edit are written back byte-for-byte.
//
// Files can be read by multiple concurrent goroutines, but mutations must be
// serialized by the caller.
type File struct {
	lines []line
	// noFinalNewline records that the source's last line had no terminator,
	// so serializing does not add one.
	noFinalNewline bool
}

type lineKind int

const (
	lineBlank lineKind = iota
	lineComment
	lineSection
	lineProperty
	lineRaw
)

// line is one physical line of the document. raw holds the original text
// without its terminator; lines synthesized by an edit hold the canonical
// rendering instead.
type line struct {
	kind lineKind
	raw  string

	// name is set for lineSection.
	name string
	// key and value are set for lineProperty.
	key   string
	value string
}

// Parse parses an INI document. Lines that do not match any construct are
// kept verbatim and ignored rather than treated as errors: existing files in
// the wild contain junk, and a read-modify-write tool must not destroy it.
//
// See the Syntax section in the package documentation for the format
// recognized by Parse.
func Parse(r io.Reader) (*File, error) {
	br := bufio.NewReader(r)
	f := new(File)
	for {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, fmt.Errorf("parse ini file: %w", err)
		}
		if text == "" && err == io.EOF {
			break
		}
		terminated := strings.HasSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\n")
		text = strings.TrimSuffix(text, "\r")
		f.lines = append(f.lines, parseLine(text))
		if err == io.EOF {
			f.noFinalNewline = !terminated
			break
		}
	}
	return f, nil
}

func parseLine(raw string) line {
	trimmed := strings.TrimSpace(raw)
	switch {
	case trimmed == "":
		return line{kind: lineBlank, raw: raw}
	case trimmed[0] == ';' || trimmed[0] == '#':
		return line{kind: lineComment, raw: raw}
	case trimmed[0] == '[':
		end := strings.LastIndexByte(trimmed, ']')
		if end < 0 {
			return line{kind: lineRaw, raw: raw}
		}
		// Everything between the brackets, taken literally, is the name.
		return line{kind: lineSection, raw: raw, name: trimmed[1:end]}
	default:
		i := strings.IndexAny(trimmed, "=:")
		if i < 0 {
			return line{kind: lineRaw, raw: raw}
		}
		key := strings.TrimSpace(trimmed[:i])
		if key == "" {
			return line{kind: lineRaw, raw: raw}
		}
		return line{kind: lineProperty, raw: raw, key: key, value: parseValue(trimmed[i+1:])}
	}
}

// parseValue decodes the text after a property's delimiter. A value wrapped
// in double quotes is stripped of exactly one layer of quotes and keeps its
// whitespace and '#' characters; an unquoted value ends at the first '#',
// which starts a trailing comment.
func parseValue(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, `"`) {
		if v, ok := unquote(s); ok {
			return v
		}
	}
	if i := strings.IndexByte(s, '#'); i >= 0 {
		s = strings.TrimSpace(s[:i])
	}
	return s
}

// unquote decodes a double-quoted value, resolving \" and \\ escapes. Text
// after the closing quote is ignored. ok is false if the closing quote is
// missing, in which case the caller falls back to the literal text.
func unquote(s string) (_ string, ok bool) {
	sb := new(strings.Builder)
	sb.Grow(len(s))
	for i := 1; i < len(s); i++ {
		switch c := s[i]; c {
		case '\\':
			if i+1 < len(s) && (s[i+1] == '"' || s[i+1] == '\\') {
				i++
				sb.WriteByte(s[i])
			} else {
				sb.WriteByte('\\')
			}
		case '"':
			return sb.String(), true
		default:
			sb.WriteByte(c)
		}
	}
	return "", false
}

// Lookup returns the value of the first property in file order that is in
// the given section and whose key matches. Section names compare
// case-sensitively; keys compare case-insensitively. Passing an empty
// section name searches the properties that appear before any section
// header. The second result reports whether the property exists, which
// distinguishes an absent key from a stored empty value.
func (f *File) Lookup(section, key string) (string, bool) {
	if f == nil {
		return "", false
	}
	current := ""
	for i := range f.lines {
		ln := &f.lines[i]
		switch ln.kind {
		case lineSection:
			current = ln.name
		case lineProperty:
			if current == section && strings.EqualFold(ln.key, key) {
				return ln.value, true
			}
		}
	}
	return "", false
}

// Get is like Lookup but returns the empty string for an absent key.
func (f *File) Get(section, key string) string {
	v, _ := f.Lookup(section, key)
	return v
}

// SectionAt returns the name of the idx'th section header counting
// top-to-bottom from zero. Repeated headers each count once. The second
// result is false once idx is past the last header, which terminates an
// enumeration loop.
func (f *File) SectionAt(idx int) (string, bool) {
	if f == nil || idx < 0 {
		return "", false
	}
	for i := range f.lines {
		if f.lines[i].kind != lineSection {
			continue
		}
		if idx == 0 {
			return f.lines[i].name, true
		}
		idx--
	}
	return "", false
}

// KeyAt returns the key of the idx'th property under the given section,
// counting top-to-bottom from zero across every block of a repeated section.
// An empty section name enumerates the properties before any header. The
// second result is false once idx is past the last property.
func (f *File) KeyAt(section string, idx int) (string, bool) {
	if f == nil || idx < 0 {
		return "", false
	}
	current := ""
	for i := range f.lines {
		ln := &f.lines[i]
		switch ln.kind {
		case lineSection:
			current = ln.name
		case lineProperty:
			if current != section {
				continue
			}
			if idx == 0 {
				return ln.key, true
			}
			idx--
		}
	}
	return "", false
}

// Sections returns the section header names in file order. Repeated headers
// appear once per occurrence, mirroring SectionAt.
func (f *File) Sections() []string {
	if f == nil {
		return nil
	}
	var names []string
	for i := range f.lines {
		if f.lines[i].kind == lineSection {
			names = append(names, f.lines[i].name)
		}
	}
	return names
}

// Keys returns the property keys under the given section in file order,
// spanning every block of a repeated section. An empty section name lists
// the properties before any header.
func (f *File) Keys(section string) []string {
	if f == nil {
		return nil
	}
	var keys []string
	current := ""
	for i := range f.lines {
		ln := &f.lines[i]
		switch ln.kind {
		case lineSection:
			current = ln.name
		case lineProperty:
			if current == section {
				keys = append(keys, ln.key)
			}
		}
	}
	return keys
}

// HasSection reports whether the section exists. A named section exists if
// the file contains its header; the unnamed global section exists if any
// property appears before the first header.
func (f *File) HasSection(section string) bool {
	if f == nil {
		return false
	}
	for i := range f.lines {
		ln := &f.lines[i]
		if section == "" {
			if ln.kind == lineSection {
				return false
			}
			if ln.kind == lineProperty {
				return true
			}
			continue
		}
		if ln.kind == lineSection && ln.name == section {
			return true
		}
	}
	return false
}

// MarshalText serializes the file in INI format. Lines that were not
// modified since parsing are emitted byte-for-byte, comments and blank
// lines included, and a source that did not end with a newline is written
// back without one.
func (f *File) MarshalText() ([]byte, error) {
	if f == nil {
		return nil, nil
	}
	var buf []byte
	for i := range f.lines {
		buf = append(buf, f.lines[i].raw...)
		if i == len(f.lines)-1 && f.noFinalNewline {
			break
		}
		buf = append(buf, '\n')
	}
	return buf, nil
}

// UnmarshalText parses the INI data, replacing the contents of f.
func (f *File) UnmarshalText(data []byte) error {
	parsed, err := Parse(strings.NewReader(string(data)))
	if err != nil {
		return err
	}
	*f = *parsed
	return nil
}
