package doxygen

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"znkr.io/doxymd/generator/dom"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want *dom.Node
	}{
		{
			name: "mixed_content",
			in:   `<para>Call <ref refid="a_1b" kindref="member">b</ref> &amp; return.</para>`,
			want: dom.New(dom.KindPara, nil,
				"Call ",
				dom.New(dom.KindRef, map[string]string{"refid": "a_1b", "kindref": "member"}, "b"),
				" & return.",
			),
		},
		{
			name: "empty_elements",
			in:   `<para>a<linebreak/>b<copy/></para>`,
			want: dom.New(dom.KindPara, nil,
				"a",
				dom.New(dom.KindLineBreak, nil),
				"b",
				dom.New("copy", nil),
			),
		},
		{
			name: "prolog_is_skipped",
			in:   "<?xml version='1.0' encoding='UTF-8' standalone='no'?>\n<doxygen version=\"1.9.8\"><compounddef id=\"x\"/></doxygen>\n",
			want: dom.New(KindDoxygen, map[string]string{"version": "1.9.8"},
				dom.New(KindCompoundDef, map[string]string{"id": "x"}),
			),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(strings.NewReader(tt.in))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Parse() mismatch [-want,+got]:\n%s", diff)
			}
		})
	}
}

func TestParse_Errors(t *testing.T) {
	if _, err := Parse(strings.NewReader("")); !errors.Is(err, ErrEmpty) {
		t.Errorf("Parse(\"\") = %v, want ErrEmpty", err)
	}
	if _, err := Parse(strings.NewReader("<para>unterminated")); err == nil {
		t.Error("Parse() of truncated input should fail")
	}
}
