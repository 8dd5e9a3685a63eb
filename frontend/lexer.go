//  Copyright (c) The nullgraph Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package frontend is nullgraph's own minimal front end for a C#-flavored
// toy language: a lexer, a combined parser/binder, and a dominator-based
// non-null-flow oracle. It exists only to drive the test harness (package
// harness) with source snippets instead of hand-built bound trees - it is
// not part of the inference engine itself (spec section 1, "the compiler
// front-end ... is out of scope").
package frontend

import (
	"fmt"
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokIntLiteral
	tokStringLiteral
	tokKeyword
	tokPunct
)

type tok struct {
	kind tokKind
	text string
	pos  token.Pos
}

type tokKind = tokenKind

var keywords = map[string]bool{
	"class": true, "return": true, "if": true, "else": true, "var": true,
	"new": true, "null": true, "true": true, "false": true, "foreach": true,
	"in": true, "yield": true, "switch": true, "this": true, "throw": true,
	"await": true, "is": true, "not": true, "params": true, "void": true,
	"static": true, "async": true,
}

// lexer tokenizes source text, recording positions against a shared
// token.FileSet the way go/scanner does, so downstream diagnostics can
// render real line:column locations.
type lexer struct {
	file *token.File
	src  string
	pos  int // byte offset into src
	toks []tok

	// comments collects each `//...` line comment's text (without the
	// leading slashes), the way parser.Parse scans for config.NoInferDirective
	// without needing a separate comment-attachment pass.
	comments []string
}

func lex(file *token.File, src string) ([]tok, []string, error) {
	l := &lexer{file: file, src: src}
	if err := l.run(); err != nil {
		return nil, nil, err
	}
	return l.toks, l.comments, nil
}

func (l *lexer) run() error {
	for {
		l.skipTrivia()
		if l.pos >= len(l.src) {
			l.emit(tokEOF, "", l.pos)
			return nil
		}
		start := l.pos
		r, size := utf8.DecodeRuneInString(l.src[l.pos:])

		switch {
		case unicode.IsDigit(r):
			l.pos += size
			for l.pos < len(l.src) {
				r2, s2 := utf8.DecodeRuneInString(l.src[l.pos:])
				if !unicode.IsDigit(r2) {
					break
				}
				l.pos += s2
			}
			l.emit(tokIntLiteral, l.src[start:l.pos], start)

		case unicode.IsLetter(r) || r == '_':
			l.pos += size
			for l.pos < len(l.src) {
				r2, s2 := utf8.DecodeRuneInString(l.src[l.pos:])
				if !unicode.IsLetter(r2) && !unicode.IsDigit(r2) && r2 != '_' {
					break
				}
				l.pos += s2
			}
			text := l.src[start:l.pos]
			if keywords[text] {
				l.emit(tokKeyword, text, start)
			} else {
				l.emit(tokIdent, text, start)
			}

		case r == '"':
			l.pos += size
			var b strings.Builder
			for l.pos < len(l.src) && l.src[l.pos] != '"' {
				if l.src[l.pos] == '\\' && l.pos+1 < len(l.src) {
					l.pos++
				}
				b.WriteByte(l.src[l.pos])
				l.pos++
			}
			if l.pos >= len(l.src) {
				return fmt.Errorf("frontend: unterminated string literal at offset %d", start)
			}
			l.pos++ // closing quote
			l.emit(tokStringLiteral, b.String(), start)

		default:
			l.lexPunct(start)
		}
	}
}

// multi-character punctuation, longest first.
var multiPunct = []string{"??", "=>", "==", "!=", "&&", "||"}

func (l *lexer) lexPunct(start int) {
	for _, p := range multiPunct {
		if strings.HasPrefix(l.src[l.pos:], p) {
			l.pos += len(p)
			l.emit(tokPunct, p, start)
			return
		}
	}
	r, size := utf8.DecodeRuneInString(l.src[l.pos:])
	l.pos += size
	l.emit(tokPunct, string(r), start)
}

func (l *lexer) skipTrivia() {
	for l.pos < len(l.src) {
		switch {
		case strings.HasPrefix(l.src[l.pos:], "//"):
			start := l.pos + 2
			for l.pos < len(l.src) && l.src[l.pos] != '\n' {
				l.pos++
			}
			l.comments = append(l.comments, l.src[start:l.pos])
		case l.src[l.pos] == ' ' || l.src[l.pos] == '\t' || l.src[l.pos] == '\r':
			l.pos++
		case l.src[l.pos] == '\n':
			l.pos++
		default:
			return
		}
	}
}

func (l *lexer) emit(kind tokKind, text string, offset int) {
	l.toks = append(l.toks, tok{kind: kind, text: text, pos: l.file.Pos(offset)})
}
