// Package xmlio reads and writes the XML documents the toolkit persists:
// look-and-feel definitions, imagesets, fonts, schemes and window layouts.
//
// Serializer produces the canonical form (self-closing tags for elements
// without content, element text for multi-line values). Parse feeds a
// document to a Handler as SAX-style element/text callbacks.
package xmlio

import (
	"bufio"
	"io"
	"strings"
)

// Serializer writes XML incrementally. The first write error is sticky and
// every later call becomes a no-op; check Err when done.
type Serializer struct {
	w        *bufio.Writer
	indent   string
	stack    []string
	tagOpen  bool
	hasChild []bool
	count    int
	err      error
}

// NewSerializer writes to w, indenting nested elements by indent spaces
// (0 disables indentation and newlines).
func NewSerializer(w io.Writer, indent int) *Serializer {
	s := &Serializer{w: bufio.NewWriter(w), indent: strings.Repeat(" ", indent)}
	s.write(`<?xml version="1.0" encoding="UTF-8"?>`)
	s.newline()
	return s
}

func (s *Serializer) write(str string) {
	if s.err != nil {
		return
	}
	_, s.err = s.w.WriteString(str)
}

func (s *Serializer) newline() {
	if s.indent != "" {
		s.write("\n")
	}
}

func (s *Serializer) pad() {
	if s.indent != "" {
		s.write(strings.Repeat(s.indent, len(s.stack)))
	}
}

func (s *Serializer) closeStartTag() {
	if s.tagOpen {
		s.write(">")
		s.tagOpen = false
	}
}

// OpenTag starts a new element.
func (s *Serializer) OpenTag(name string) *Serializer {
	if s.tagOpen {
		s.closeStartTag()
		s.newline()
	}
	if n := len(s.hasChild); n > 0 {
		s.hasChild[n-1] = true
	}
	s.pad()
	s.write("<" + name)
	s.stack = append(s.stack, name)
	s.hasChild = append(s.hasChild, false)
	s.tagOpen = true
	s.count++
	return s
}

// Attribute adds an attribute to the element just opened. It is ignored once
// the element has content.
func (s *Serializer) Attribute(name, value string) *Serializer {
	if !s.tagOpen {
		return s
	}
	s.write(" " + name + `="` + EscapeAttr(value) + `"`)
	return s
}

// Text writes element text to the current element.
func (s *Serializer) Text(text string) *Serializer {
	s.closeStartTag()
	s.write(EscapeText(text))
	if n := len(s.hasChild); n > 0 {
		// text elements close on the same line
		s.hasChild[n-1] = false
	}
	return s
}

// CloseTag ends the current element. Elements without content are written
// in self-closing form.
func (s *Serializer) CloseTag() *Serializer {
	n := len(s.stack)
	if n == 0 {
		return s
	}
	name := s.stack[n-1]
	children := s.hasChild[n-1]
	s.stack = s.stack[:n-1]
	s.hasChild = s.hasChild[:n-1]
	if s.tagOpen {
		s.write(" />")
		s.tagOpen = false
		s.newline()
		return s
	}
	if children {
		s.pad()
	}
	s.write("</" + name + ">")
	s.newline()
	return s
}

// TagCount returns the number of elements opened so far.
func (s *Serializer) TagCount() int {
	return s.count
}

// Flush closes any open elements and flushes buffered output. It returns the
// first error encountered.
func (s *Serializer) Flush() error {
	for len(s.stack) > 0 {
		s.CloseTag()
	}
	if s.err == nil {
		s.err = s.w.Flush()
	}
	return s.err
}

// Err returns the first write error.
func (s *Serializer) Err() error {
	return s.err
}

var (
	attrEscaper = strings.NewReplacer(
		"&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;",
		"\n", "&#x0A;", "\r", "&#x0D;", "\t", "&#x09;",
	)
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
)

// EscapeAttr escapes s for use inside a double-quoted attribute.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// EscapeText escapes s for use as element text.
func EscapeText(s string) string {
	return textEscaper.Replace(s)
}
