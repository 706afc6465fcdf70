// Copyright 2021 YourBase Inc.
// SPDX-License-Identifier: BSD-3-Clause

/*
Package stn parses the Simple Text Notation format: a minimal plain-text
attribute/value format for configuration-style files. The format exists to
be trivially human-readable and trivially parseable, and unlike JSON it
permits comments.

Parsing never fails: any byte sequence parses to a set of attributes,
possibly empty. See Error handling below.

Syntax

A file is ASCII text made of attribute/value pairs. An attribute name is
written on one line and its value on the next:

	attribute
	attribute_value

	attribute2
	attribute_value2

Names and values are taken verbatim: any delimiter or indentation in front
of them is part of them. Pairs are separated by any number of newlines.

An attribute whose value line is empty has the null value, stored as the
empty string:

	attribute

	attribute2
	value2

Attribute names may repeat. The value of the last occurrence wins:

	attribute1
	hello

	attribute1
	world

Here "world" is the value of attribute1.

Comments

A line starting with a hash ('#') is a comment when it appears before an
attribute name. A hash line in value position is not a comment: it is taken
verbatim as the attribute's value.

	# This is a comment.
	attribute
	attribute_value

	attribute2
	# This is an attribute value, not a comment.

Multi-line values

A value may span several lines. A value line consisting of exactly
"[MULTILINE]" opens a block that runs until the first line consisting of
exactly "[END_MULTILINE]"; the lines in between, with their interior
newlines but without the closing marker, form the value:

	attribute
	[MULTILINE]
	 first line of the value
	 second line of the value
	[END_MULTILINE]

If the closing marker never appears, the value runs to the end of the file.

Error handling

Parse is a total function: it returns an attribute set for every input,
and an empty input yields an empty set. ParseFile treats a missing or
unreadable file as empty input and reports nothing; callers that must
distinguish a missing file from an empty one should stat the file first.
*/
package stn
