// Package frontmatter locates and inspects the YAML header of SKILL.md
// documents.
//
// A header is delimited by a line containing only "---" at the very start of
// the document and the next line containing only "---". The text between the
// delimiters is decoded with gopkg.in/yaml.v3.
//
// [Find] reports the byte offsets of the header so callers can rewrite it in
// place, and [Inspect] decodes it the way the skill validator needs:
//
//	res := frontmatter.Inspect(content)
//	if !res.HasFrontmatter {
//		// warn: no frontmatter
//	}
//	for _, msg := range res.Errors {
//		// warn: YAML parse error
//	}
//
// Both LF and CRLF line endings are handled, and a leading UTF-8 byte order
// mark is ignored.
package frontmatter
