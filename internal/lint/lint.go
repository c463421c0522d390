// Package lint checks themelet stylesheets for structural mistakes before
// they are aggregated: unclosed comments and strings, unbalanced braces and
// empty blocks. It tokenizes with github.com/gorilla/css and never parses
// SCSS beyond stripping line comments.
package lint

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gorilla/css/scanner"

	oerrors "github.com/lfrtheme/themelet/internal/errors"
)

// Rule names.
const (
	RuleSyntax            = "syntax"
	RuleStringNoNewline   = "string-no-newline"
	RuleBlockNoUnbalanced = "block-no-unbalanced"
	RuleBlockNoEmpty      = "block-no-empty"
)

// StylePattern selects the files linted below a root.
const StylePattern = "**/*.{css,scss}"

// Finding is one problem in one file.
type Finding struct {
	File    string `json:"file" yaml:"file"`
	Line    int    `json:"line" yaml:"line"`
	Column  int    `json:"column" yaml:"column"`
	Rule    string `json:"rule" yaml:"rule"`
	Message string `json:"message" yaml:"message"`
}

// String formats the finding as file:line:column message (rule).
func (f Finding) String() string {
	return fmt.Sprintf("%s:%d:%d %s (%s)", f.File, f.Line, f.Column, f.Message, f.Rule)
}

// LintPaths lints every stylesheet below each root. Roots that do not exist
// are skipped. Findings are ordered by root, then by file path.
func LintPaths(ctx context.Context, roots []string) ([]Finding, error) {
	var findings []Finding

	for _, root := range roots {
		info, err := os.Stat(root)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return findings, oerrors.WrapIO(err, "reading", root)
		}
		if !info.IsDir() {
			continue
		}

		matches, err := doublestar.Glob(os.DirFS(root), StylePattern, doublestar.WithFilesOnly())
		if err != nil {
			return findings, fmt.Errorf("matching stylesheets in %s: %w", root, err)
		}
		slices.Sort(matches)

		for _, rel := range matches {
			if err := ctx.Err(); err != nil {
				return findings, err
			}

			path := filepath.Join(root, filepath.FromSlash(rel))
			data, err := os.ReadFile(path)
			if err != nil {
				return findings, oerrors.WrapIO(err, "reading", path)
			}
			findings = append(findings, LintSource(path, string(data))...)
		}
	}

	return findings, nil
}

// LintSource lints one stylesheet. file names the source in findings and
// selects SCSS handling by its extension.
func LintSource(file, content string) []Finding {
	if strings.EqualFold(filepath.Ext(file), ".scss") {
		content = stripLineComments(content)
	}

	var (
		findings []Finding
		blocks   []*block
	)

	add := func(line, col int, rule, msg string) {
		findings = append(findings, Finding{File: file, Line: line, Column: col, Rule: rule, Message: msg})
	}

	s := scanner.New(content)
	for {
		tok := s.Next()

		switch tok.Type {
		case scanner.TokenEOF:
			for _, b := range blocks {
				add(b.line, b.col, RuleBlockNoUnbalanced, "Unclosed block")
			}
			return findings

		case scanner.TokenError:
			rule := RuleSyntax
			msg := "Unclosed comment"
			if strings.Contains(tok.Value, "quotation") {
				rule = RuleStringNoNewline
				msg = "Unclosed string"
			}
			add(tok.Line, tok.Column, rule, msg)
			return findings

		case scanner.TokenS, scanner.TokenComment:
			continue

		case scanner.TokenChar:
			switch tok.Value {
			case "{":
				if n := len(blocks); n > 0 {
					blocks[n-1].empty = false
				}
				blocks = append(blocks, &block{line: tok.Line, col: tok.Column, empty: true})
				continue
			case "}":
				n := len(blocks)
				if n == 0 {
					add(tok.Line, tok.Column, RuleBlockNoUnbalanced, "Unexpected }")
					continue
				}
				b := blocks[n-1]
				blocks = blocks[:n-1]
				if b.empty {
					add(b.line, b.col, RuleBlockNoEmpty, "Unexpected empty block")
				}
				continue
			}
		}

		if n := len(blocks); n > 0 {
			blocks[n-1].empty = false
		}
	}
}

// block is an open { awaiting its }.
type block struct {
	line, col int
	empty     bool
}

// stripLineComments drops SCSS // comments up to the end of their line. A //
// only starts a comment at the start of a line or after whitespace, which
// leaves url(http://...) alone, and never inside a /* */ comment or a quoted
// string. Everything before a dropped comment keeps its position.
func stripLineComments(content string) string {
	var (
		b       strings.Builder
		quote   byte
		comment bool
	)
	b.Grow(len(content))

	for i := 0; i < len(content); i++ {
		c := content[i]

		switch {
		case comment:
			if c == '*' && i+1 < len(content) && content[i+1] == '/' {
				b.WriteString("*/")
				i++
				comment = false
				continue
			}
		case quote != 0:
			switch c {
			case '\\':
				if i+1 < len(content) && content[i+1] != '\n' {
					b.WriteByte(c)
					i++
					c = content[i]
				}
			case quote, '\n':
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '/' && i+1 < len(content) && content[i+1] == '*':
			b.WriteString("/*")
			i++
			comment = true
			continue
		case c == '/' && i+1 < len(content) && content[i+1] == '/' &&
			(i == 0 || isSpace(content[i-1])):
			for i < len(content) && content[i] != '\n' {
				i++
			}
			if i < len(content) {
				b.WriteByte('\n')
			}
			continue
		}

		b.WriteByte(c)
	}

	return b.String()
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
