// Copyright 2020 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package ini provides a parser and serializer for the INI file format.
See https://en.wikipedia.org/wiki/INI_file.

This package is specifically designed for read-modify-write scenarios: a
parsed File remembers every physical line, and serializing writes untouched
lines back byte-for-byte, comments and blank lines included.

# Syntax

An INI file is line-oriented text. A property is a key and value on a single
line, separated by an equals sign ('=') or a colon (':'):

	key=value
	key: value

Whitespace around the delimiter, the key, and the value is ignored. Keys
compare case-insensitively. Values may be wrapped in one pair of double
quotes ('"') to preserve leading or trailing whitespace; inside quotes, \"
and \\ stand for a quote and a backslash.

Properties may be grouped into sections. A section starts at a line holding
its name in square brackets and ends at the next section header or the end of
file:

	[section]
	key1=value1
	key2=value2

The text between the brackets is taken literally as the section name, and
names compare case-sensitively. Properties before any header belong to the
global section, identified by the empty string ("").

If the first non-whitespace character of a line is a semicolon (';') or a
hash ('#'), the line is a comment. A hash after an unquoted value starts a
trailing comment, which is not part of the value:

	key=value   # a trailing comment

Lines that match no construct are preserved verbatim and otherwise ignored.

# Repeated names

Multiple sections may have the same name; they are treated as one section
whose properties appear block by block. If a key is repeated within a
section, the first value in file order wins.
*/
package ini
