// Package highlight renders file content with terminal syntax colors.
package highlight

import (
	"bytes"
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// DefaultStyle is used when no style is named or the name is unknown.
const DefaultStyle = "github-dark"

// DefaultFormatter is used when no formatter is named.
const DefaultFormatter = "terminal256"

// Options controls Render.
type Options struct {
	// Style is a chroma style name such as "github" or "monokai".
	Style string
	// Formatter is a chroma formatter name such as "terminal16m" or "html".
	// Empty means DefaultFormatter.
	Formatter string
}

// Render writes content to w with syntax colors chosen from path and, when
// the name says nothing, from the content itself. Binary content is written
// unchanged.
func Render(w io.Writer, path string, content []byte, opts Options) error {
	if IsBinary(content) {
		_, err := w.Write(content)
		return err
	}

	lexer := lexerFor(path, content)
	iterator, err := lexer.Tokenise(nil, string(content))
	if err != nil {
		return fmt.Errorf("tokenise %s: %w", path, err)
	}

	formatterName := opts.Formatter
	if formatterName == "" {
		formatterName = DefaultFormatter
	}
	formatter := formatters.Get(formatterName)
	if formatter == nil {
		formatter = formatters.Fallback
	}

	return formatter.Format(w, styleFor(opts.Style), iterator)
}

// Language returns the name of the lexer Render would use, or "" when it
// would fall back to plain text.
func Language(path string, content []byte) string {
	if IsBinary(content) {
		return ""
	}
	lexer := lexerFor(path, content)
	if lexer == lexers.Fallback {
		return ""
	}
	return lexer.Config().Name
}

// Styles lists the registered style names.
func Styles() []string {
	return styles.Names()
}

// Formatters lists the registered formatter names.
func Formatters() []string {
	return formatters.Names()
}

// IsBinary reports whether content looks like binary data, using the same
// NUL-in-the-first-8000-bytes rule as git.
func IsBinary(content []byte) bool {
	head := content
	if len(head) > 8000 {
		head = head[:8000]
	}
	return bytes.IndexByte(head, 0) >= 0
}

func lexerFor(path string, content []byte) chroma.Lexer {
	var lexer chroma.Lexer
	if path != "" {
		lexer = lexers.Match(path)
	}
	if lexer == nil && len(content) > 0 {
		lexer = lexers.Analyse(string(content))
	}
	if lexer == nil {
		return lexers.Fallback
	}
	return chroma.Coalesce(lexer)
}

func styleFor(name string) *chroma.Style {
	if name != "" {
		if st := styles.Get(name); st != nil && st != styles.Fallback {
			return st
		}
	}
	if st := styles.Get(DefaultStyle); st != nil {
		return st
	}
	return styles.Fallback
}
