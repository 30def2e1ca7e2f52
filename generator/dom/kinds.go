package dom

import (
	"maps"
	"slices"
)

// Kind identifies the type of a node. For elements parsed from XML it's the element name.
type Kind string

// Abstract kinds never appear in parsed trees. They only serve as ancestors in a [Schema] so that
// renderers can be registered once for a whole family of kinds.
const (
	KindSection     Kind = "#section"
	KindMarkup      Kind = "#markup"
	KindList        Kind = "#list"
	KindDescription Kind = "#description"
	KindSpecialChar Kind = "#specialchar"
	KindGroup       Kind = "#group"
	KindRawOutput   Kind = "#rawoutput"
	KindDiagram     Kind = "#diagram"
	KindDiagramFile Kind = "#diagramfile"
)

// Description content.
const (
	KindBriefDescription    Kind = "briefdescription"
	KindDetailedDescription Kind = "detaileddescription"
	KindInbodyDescription   Kind = "inbodydescription"
)

// Sections and headings.
const (
	KindSect1   Kind = "sect1"
	KindSect2   Kind = "sect2"
	KindSect3   Kind = "sect3"
	KindSect4   Kind = "sect4"
	KindSect5   Kind = "sect5"
	KindSect6   Kind = "sect6"
	KindTitle   Kind = "title"
	KindHeading Kind = "heading"
)

// Block content.
const (
	KindPara              Kind = "para"
	KindItemizedList      Kind = "itemizedlist"
	KindOrderedList       Kind = "orderedlist"
	KindListItem          Kind = "listitem"
	KindVariableList      Kind = "variablelist"
	KindVarListEntry      Kind = "varlistentry"
	KindTerm              Kind = "term"
	KindTable             Kind = "table"
	KindCaption           Kind = "caption"
	KindRow               Kind = "row"
	KindEntry             Kind = "entry"
	KindSimpleSect        Kind = "simplesect"
	KindSimpleSectSep     Kind = "simplesectsep"
	KindParameterList     Kind = "parameterlist"
	KindParameterItem     Kind = "parameteritem"
	KindParameterNameList Kind = "parameternamelist"
	KindParameterName     Kind = "parametername"
	KindParameterType     Kind = "parametertype"
	KindParameterDesc     Kind = "parameterdescription"
	KindXRefSect          Kind = "xrefsect"
	KindXRefTitle         Kind = "xreftitle"
	KindXRefDescription   Kind = "xrefdescription"
	KindProgramListing    Kind = "programlisting"
	KindCodeLine          Kind = "codeline"
	KindHighlight         Kind = "highlight"
	KindVerbatim          Kind = "verbatim"
	KindPreformatted      Kind = "preformatted"
	KindBlockQuote        Kind = "blockquote"
	KindHRuler            Kind = "hruler"
	KindTocList           Kind = "toclist"
	KindTocItem           Kind = "tocitem"
	KindDetails           Kind = "details"
	KindSummary           Kind = "summary"
	KindParBlock          Kind = "parblock"
	KindInternal          Kind = "internal"
	KindLanguage          Kind = "language"
	KindCopyDoc           Kind = "copydoc"
)

// Markup spans.
const (
	KindBold           Kind = "bold"
	KindEmphasis       Kind = "emphasis"
	KindUnderline      Kind = "underline"
	KindStrike         Kind = "strike"
	KindS              Kind = "s"
	KindDel            Kind = "del"
	KindIns            Kind = "ins"
	KindSubscript      Kind = "subscript"
	KindSuperscript    Kind = "superscript"
	KindSmall          Kind = "small"
	KindCenter         Kind = "center"
	KindCite           Kind = "cite"
	KindComputerOutput Kind = "computeroutput"
	KindJavadocCode    Kind = "javadoccode"
)

// Other inline content.
const (
	KindRef            Kind = "ref"
	KindULink          Kind = "ulink"
	KindAnchor         Kind = "anchor"
	KindFormula        Kind = "formula"
	KindImage          Kind = "image"
	KindEmoji          Kind = "emoji"
	KindLineBreak      Kind = "linebreak"
	KindSp             Kind = "sp"
	KindIndexEntry     Kind = "indexentry"
	KindPrimaryIE      Kind = "primaryie"
	KindSecondaryIE    Kind = "secondaryie"
	KindJavadocLiteral Kind = "javadocliteral"
)

// Output format specific passthrough.
const (
	KindHTMLOnly    Kind = "htmlonly"
	KindLatexOnly   Kind = "latexonly"
	KindRTFOnly     Kind = "rtfonly"
	KindManOnly     Kind = "manonly"
	KindXMLOnly     Kind = "xmlonly"
	KindDocbookOnly Kind = "docbookonly"
)

// Diagrams.
const (
	KindDot      Kind = "dot"
	KindMsc      Kind = "msc"
	KindPlantUML Kind = "plantuml"
	KindDotFile  Kind = "dotfile"
	KindMscFile  Kind = "mscfile"
	KindDiaFile  Kind = "diafile"
)

// Schema declares the ancestor of every kind the renderer knows about. Kinds without a declared
// parent are roots.
type Schema struct {
	parents map[Kind]Kind
}

// DefaultSchema covers the description grammar of Doxygen's compound.xsd.
var DefaultSchema = newDefaultSchema()

func newDefaultSchema() *Schema {
	parents := map[Kind]Kind{
		KindBriefDescription:    KindDescription,
		KindDetailedDescription: KindDescription,
		KindInbodyDescription:   KindDescription,

		KindSect1: KindSection,
		KindSect2: KindSection,
		KindSect3: KindSection,
		KindSect4: KindSection,
		KindSect5: KindSection,
		KindSect6: KindSection,

		KindItemizedList: KindList,
		KindOrderedList:  KindList,

		KindBold:           KindMarkup,
		KindEmphasis:       KindMarkup,
		KindUnderline:      KindMarkup,
		KindStrike:         KindMarkup,
		KindS:              KindMarkup,
		KindDel:            KindMarkup,
		KindIns:            KindMarkup,
		KindSubscript:      KindMarkup,
		KindSuperscript:    KindMarkup,
		KindSmall:          KindMarkup,
		KindCenter:         KindMarkup,
		KindCite:           KindMarkup,
		KindComputerOutput: KindMarkup,
		KindJavadocCode:    KindMarkup,

		KindVarListEntry:      KindGroup,
		KindTerm:              KindGroup,
		KindCaption:           KindGroup,
		KindParameterItem:     KindGroup,
		KindParameterNameList: KindGroup,
		KindParameterName:     KindGroup,
		KindParameterType:     KindGroup,
		KindParameterDesc:     KindGroup,
		KindXRefTitle:         KindGroup,
		KindXRefDescription:   KindGroup,
		KindSummary:           KindGroup,
		KindParBlock:          KindGroup,
		KindInternal:          KindGroup,
		KindLanguage:          KindGroup,
		KindCopyDoc:           KindGroup,
		KindIndexEntry:        KindGroup,
		KindPrimaryIE:         KindGroup,
		KindSecondaryIE:       KindGroup,

		KindHTMLOnly:    KindRawOutput,
		KindLatexOnly:   KindRawOutput,
		KindRTFOnly:     KindRawOutput,
		KindManOnly:     KindRawOutput,
		KindXMLOnly:     KindRawOutput,
		KindDocbookOnly: KindRawOutput,

		KindDot:      KindDiagram,
		KindMsc:      KindDiagram,
		KindPlantUML: KindDiagram,
		KindDotFile:  KindDiagramFile,
		KindMscFile:  KindDiagramFile,
		KindDiaFile:  KindDiagramFile,
	}

	// Kinds without a family.
	for _, k := range []Kind{
		KindTitle, KindHeading, KindPara, KindListItem, KindVariableList, KindTable, KindRow,
		KindEntry, KindSimpleSect, KindSimpleSectSep, KindParameterList, KindXRefSect,
		KindProgramListing, KindCodeLine, KindHighlight, KindVerbatim, KindPreformatted,
		KindBlockQuote, KindHRuler, KindTocList, KindTocItem, KindDetails, KindRef, KindULink,
		KindAnchor, KindFormula, KindImage, KindEmoji, KindLineBreak, KindSp, KindJavadocLiteral,
	} {
		parents[k] = ""
	}

	for k := range specialChars {
		parents[k] = KindSpecialChar
	}

	// Abstract kinds are roots.
	for _, k := range abstractKinds {
		parents[k] = ""
	}

	return &Schema{parents: parents}
}

var abstractKinds = []Kind{
	KindSection, KindMarkup, KindList, KindDescription, KindSpecialChar, KindGroup, KindRawOutput,
	KindDiagram, KindDiagramFile,
}

// IsAbstract reports whether k is one of the ancestor-only kinds.
func IsAbstract(k Kind) bool {
	return slices.Contains(abstractKinds, k)
}

// With returns a copy of s that additionally declares kind with the given parent.
func (s *Schema) With(kind, parent Kind) *Schema {
	parents := maps.Clone(s.parents)
	parents[kind] = parent
	return &Schema{parents: parents}
}

// Has reports whether kind is declared in s.
func (s *Schema) Has(kind Kind) bool {
	_, ok := s.parents[kind]
	return ok
}

// Parent returns the declared parent of kind, if any.
func (s *Schema) Parent(kind Kind) (Kind, bool) {
	p, ok := s.parents[kind]
	if !ok || p == "" {
		return "", false
	}
	return p, true
}

// Chain returns kind followed by all of its ancestors, nearest first. The walk stops at the first
// undeclared kind or when a cycle is detected.
func (s *Schema) Chain(kind Kind) []Kind {
	chain := []Kind{kind}
	for {
		p, ok := s.Parent(chain[len(chain)-1])
		if !ok || slices.Contains(chain, p) {
			return chain
		}
		chain = append(chain, p)
	}
}

// Known returns all declared kinds, including abstract ones, in sorted order.
func (s *Schema) Known() []Kind {
	return slices.Sorted(maps.Keys(s.parents))
}

// Concrete returns all declared kinds that can appear in a parsed tree, in sorted order.
func (s *Schema) Concrete() []Kind {
	var ret []Kind
	for _, k := range s.Known() {
		if !IsAbstract(k) {
			ret = append(ret, k)
		}
	}
	return ret
}
