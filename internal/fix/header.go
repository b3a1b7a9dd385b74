package fix

import (
	"bytes"
	"encoding/json"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sickn33/agskills/pkg/frontmatter"
)

// editHeader applies edit to each line of content's frontmatter header and
// returns the rebuilt document. Documents without a closed header are
// returned unchanged. edit receives the line without a trailing "\r" and
// returns the replacement and whether it changed.
func editHeader(content []byte, edit func(line string) (string, bool)) ([]byte, bool) {
	block, ok := frontmatter.Find(content)
	if !ok || !block.Terminated {
		return content, false
	}

	lines := strings.Split(string(block.YAML), "\n")
	changed := false
	for i, line := range lines {
		bare, cr := strings.CutSuffix(line, "\r")
		if next, ok := edit(bare); ok {
			if cr {
				next += "\r"
			}
			lines[i] = next
			changed = true
		}
	}
	if !changed {
		return content, false
	}

	var buf bytes.Buffer
	buf.Grow(len(content) + 16)
	buf.Write(content[:block.Start])
	buf.WriteString(strings.Join(lines, "\n"))
	buf.Write(content[block.End:])
	return buf.Bytes(), true
}

// fieldValue returns the raw value of a top-level "key:" line.
func fieldValue(line, key string) (string, bool) {
	rest, ok := strings.CutPrefix(line, key+":")
	if !ok {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// scalarValue decodes a single-line YAML scalar. Values YAML rejects, such
// as plain scalars containing ": ", fall back to the raw text with one pair
// of outer quotes removed.
func scalarValue(raw string) string {
	var s string
	if err := yaml.Unmarshal([]byte(raw), &s); err == nil {
		return s
	}
	if len(raw) >= 2 {
		first, last := raw[0], raw[len(raw)-1]
		if (first == '"' || first == '\'') && first == last {
			return raw[1 : len(raw)-1]
		}
	}
	return raw
}

// isBlockScalar reports whether raw opens a multi-line "|" or ">" scalar.
func isBlockScalar(raw string) bool {
	return strings.HasPrefix(raw, "|") || strings.HasPrefix(raw, ">")
}

// quote renders s as a double-quoted scalar. JSON string escapes are a
// subset of YAML double-quoted escapes.
func quote(s string) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(s)
	return strings.TrimSuffix(buf.String(), "\n")
}
