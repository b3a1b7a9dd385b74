package frontmatter

import (
	"bytes"
	"errors"

	"gopkg.in/yaml.v3"
)

// ErrUnterminated is reported when the opening delimiter has no matching
// closing delimiter.
var ErrUnterminated = errors.New("missing closing frontmatter delimiter")

var bom = []byte("\xef\xbb\xbf")

// Block describes a frontmatter header within a document.
type Block struct {
	// YAML is the header text between the delimiters, including its final
	// newline.
	YAML []byte

	// Start and End are the byte offsets of YAML within the document.
	Start, End int

	// Body is everything after the closing delimiter line.
	Body []byte

	// Terminated is false when the document ends before a closing delimiter.
	Terminated bool
}

// Find locates the frontmatter header of content. ok is false when the
// document does not open with a delimiter line.
func Find(content []byte) (block Block, ok bool) {
	off := 0
	if bytes.HasPrefix(content, bom) {
		off = len(bom)
	}

	first, off := nextLine(content, off)
	if !isDelimiter(first) {
		return Block{}, false
	}

	start := off
	for off < len(content) {
		lineStart := off
		var line []byte
		line, off = nextLine(content, off)
		if isDelimiter(line) {
			return Block{
				YAML:       content[start:lineStart],
				Start:      start,
				End:        lineStart,
				Body:       content[off:],
				Terminated: true,
			}, true
		}
	}

	return Block{YAML: content[start:], Start: start, End: len(content)}, true
}

// Inspection is the outcome of decoding a document's frontmatter.
type Inspection struct {
	// HasFrontmatter reports whether the document opens with a header.
	HasFrontmatter bool

	// Errors holds YAML decoding errors. Empty for valid headers and for
	// documents without one.
	Errors []string

	// Data is the decoded header. Nil without a header.
	Data map[string]any

	// Body is the document after the header, or the whole document.
	Body []byte
}

// Inspect decodes the frontmatter of content without failing: problems are
// collected in Errors.
func Inspect(content []byte) Inspection {
	block, ok := Find(content)
	if !ok {
		return Inspection{Body: content}
	}

	res := Inspection{HasFrontmatter: true, Body: block.Body}
	if !block.Terminated {
		res.Errors = []string{ErrUnterminated.Error()}
		return res
	}

	data := map[string]any{}
	if err := yaml.Unmarshal(block.YAML, &data); err != nil {
		res.Errors = yamlErrors(err)
		return res
	}
	res.Data = data
	return res
}

// String returns the header value for key when it is a string.
func (i Inspection) String(key string) (string, bool) {
	s, ok := i.Data[key].(string)
	return s, ok
}

func yamlErrors(err error) []string {
	var typeErr *yaml.TypeError
	if errors.As(err, &typeErr) {
		return typeErr.Errors
	}
	return []string{err.Error()}
}

// nextLine returns the line starting at off without its terminator, and the
// offset of the following line.
func nextLine(content []byte, off int) ([]byte, int) {
	i := bytes.IndexByte(content[off:], '\n')
	if i < 0 {
		return content[off:], len(content)
	}
	return content[off : off+i], off + i + 1
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimRight(line, " \t\r")) == "---"
}
