package skill

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/sickn33/agskills/pkg/frontmatter"
)

// usePhrases are the accepted headings for the section that tells an
// assistant when to apply a skill. Matching is case-sensitive.
var usePhrases = []string{
	"When to Use This Skill",
	"When to Use",
	"When To Use",
	"When to use",
	"Use this skill when",
}

// HasUseSection reports whether the document has a markdown heading that
// opens a "when to use" section. Headings inside code blocks and the
// frontmatter header do not count.
func HasUseSection(content []byte) bool {
	if block, ok := frontmatter.Find(content); ok && block.Terminated {
		content = block.Body
	}

	doc := goldmark.DefaultParser().Parse(text.NewReader(content))

	found := false
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if isUseHeading(headingText(heading, content)) {
			found = true
			return ast.WalkStop, nil
		}
		return ast.WalkSkipChildren, nil
	})
	return found
}

func isUseHeading(title string) bool {
	for _, phrase := range usePhrases {
		rest, ok := strings.CutPrefix(title, phrase)
		if !ok {
			continue
		}
		if rest == "" {
			return true
		}
		// "When to Use:" and "When to Use This Skill" qualify, "When to Useful" does not.
		r, _ := utf8.DecodeRuneInString(rest)
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// headingText concatenates the text segments below a heading, dropping
// inline markup such as emphasis markers.
func headingText(heading ast.Node, src []byte) string {
	var sb strings.Builder
	_ = ast.Walk(heading, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if t, ok := n.(*ast.Text); ok && entering {
			sb.Write(t.Segment.Value(src))
			if t.SoftLineBreak() {
				sb.WriteByte(' ')
			}
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(sb.String())
}
