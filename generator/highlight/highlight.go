// Package highlight maps the lexical classes Doxygen attaches to program listings onto CSS classes.
//
// Doxygen already tokenizes listings, so unlike a syntax highlighter this package never lexes
// source. It translates Doxygen's highlight classes into chroma token types and uses one style
// table for all of them, which keeps the output consistent with listings highlighted by chroma.
package highlight

import (
	"fmt"
	"maps"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

var style = map[chroma.TokenType]string{
	chroma.Keyword:           "hl-b",
	chroma.KeywordPseudo:     "",
	chroma.KeywordType:       "hl-t",
	chroma.NameClass:         "hl-b",
	chroma.NameEntity:        "hl-b",
	chroma.NameException:     "hl-b",
	chroma.NameNamespace:     "hl-b",
	chroma.NameTag:           "hl-b",
	chroma.NameBuiltin:       "hl-bl",
	chroma.LiteralString:     "hl-i",
	chroma.LiteralNumber:     "hl-n",
	chroma.OperatorWord:      "hl-b",
	chroma.Operator:          "hl-o",
	chroma.Comment:           "hl-ii",
	chroma.CommentPreproc:    "hl-p",
	chroma.GenericEmph:       "hl-i",
	chroma.GenericHeading:    "hl-b",
	chroma.GenericPrompt:     "hl-b",
	chroma.GenericStrong:     "hl-b",
	chroma.GenericSubheading: "hl-b",
}

// classes maps Doxygen's highlight classes to token types.
var classes = map[string]chroma.TokenType{
	"normal":        chroma.Text,
	"comment":       chroma.Comment,
	"preprocessor":  chroma.CommentPreproc,
	"keyword":       chroma.Keyword,
	"keywordtype":   chroma.KeywordType,
	"keywordflow":   chroma.KeywordReserved,
	"stringliteral": chroma.LiteralString,
	"charliteral":   chroma.LiteralStringChar,
	"xmlcdata":      chroma.LiteralStringOther,
	"vhdlkeyword":   chroma.Keyword,
	"vhdllogic":     chroma.OperatorWord,
	"vhdlchar":      chroma.LiteralStringChar,
	"vhdldigit":     chroma.LiteralNumber,
}

// TokenType returns the token type for a Doxygen highlight class. The second return value is
// false if the class is unknown, in which case the returned type is plain text.
func TokenType(class string) (chroma.TokenType, bool) {
	t, ok := classes[class]
	if !ok {
		return chroma.Text, false
	}
	return t, true
}

// Classes returns the Doxygen highlight classes this package knows about, sorted.
func Classes() []string {
	return slices.Sorted(maps.Keys(classes))
}

// Class returns the CSS class for a token type, or "" if tokens of this type are rendered plain.
func Class(t chroma.TokenType) string {
	s, ok := style[t]
	if ok {
		return s
	}
	s, ok = style[t.SubCategory()]
	if ok {
		return s
	}
	s, ok = style[t.Category()]
	if ok {
		return s
	}
	return ""
}

// LangFromFilename returns the name of the language of a listing, derived from its file name or
// extension (Doxygen uses ".py" style names for \code{.py} blocks). It returns "" if the language
// can't be determined.
func LangFromFilename(filename string) string {
	if filename == "" {
		return ""
	}
	if strings.HasPrefix(filename, ".") {
		filename = "file" + filename
	}
	lexer := lexers.Match(filepath.Base(filename))
	if lexer == nil {
		return ""
	}
	return strings.ToLower(lexer.Config().Name)
}

// CSS returns a style sheet for all CSS classes, taking the colors from the chroma style with
// the given name. Unknown style names fall back to chroma's default style.
func CSS(name string) string {
	st := styles.Get(name)

	// Several token types share a class, the most general one defines its look.
	types := make(map[string]chroma.TokenType)
	for t, class := range style {
		if class == "" {
			continue
		}
		if prev, ok := types[class]; !ok || t < prev {
			types[class] = t
		}
	}
	classes := make([]string, 0, len(types))
	for class := range types {
		classes = append(classes, class)
	}
	slices.Sort(classes)

	var sb strings.Builder
	for _, class := range classes {
		e := st.Get(types[class])
		var decls []string
		if e.Colour.IsSet() {
			decls = append(decls, "color: "+e.Colour.String())
		}
		if e.Bold == chroma.Yes {
			decls = append(decls, "font-weight: bold")
		}
		if e.Italic == chroma.Yes {
			decls = append(decls, "font-style: italic")
		}
		if len(decls) == 0 {
			continue
		}
		fmt.Fprintf(&sb, ".%s { %s }\n", class, strings.Join(decls, "; "))
	}
	return sb.String()
}
