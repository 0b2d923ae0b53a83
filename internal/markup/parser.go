// Package markup turns article bodies written in a small markdown subset into
// typed blocks. Parsing never fails and performs no escaping; callers that
// emit HTML must sanitise the text themselves.
package markup

import "strings"

// Kind identifies a block variant.
type Kind string

const (
	KindHeading2  Kind = "heading2"
	KindHeading3  Kind = "heading3"
	KindParagraph Kind = "paragraph"
	KindList      Kind = "list"
	KindBoldLine  Kind = "bold_line"
)

// Block is one renderable unit. Items is only set for KindList; Text is used
// by every other kind.
type Block struct {
	Kind  Kind     `json:"kind"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

// Heading2 returns a level two heading block.
func Heading2(text string) Block { return Block{Kind: KindHeading2, Text: text} }

// Heading3 returns a level three heading block.
func Heading3(text string) Block { return Block{Kind: KindHeading3, Text: text} }

// Paragraph returns a paragraph block.
func Paragraph(text string) Block { return Block{Kind: KindParagraph, Text: text} }

// List returns a list block.
func List(items ...string) Block { return Block{Kind: KindList, Items: items} }

// BoldLine returns a block whose whole text is emphasised.
func BoldLine(text string) Block { return Block{Kind: KindBoldLine, Text: text} }

const (
	strongMarker = "**"
	strongOpen   = "<strong>"
	strongClose  = "</strong>"
)

// Parse splits content on blank lines and classifies each chunk by its first
// line. Chunk order is block order; all-whitespace chunks are dropped.
func Parse(content string) []Block {
	content = strings.ReplaceAll(content, "\r\n", "\n")

	blocks := []Block{}
	for _, chunk := range strings.Split(content, "\n\n") {
		chunk = strings.TrimSpace(chunk)
		if chunk == "" {
			continue
		}
		blocks = append(blocks, parseChunk(chunk)...)
	}
	return blocks
}

func parseChunk(chunk string) []Block {
	lines := strings.Split(chunk, "\n")
	first := lines[0]

	switch {
	case strings.HasPrefix(first, "### "):
		return withTrailing(Heading3(InlineBold(first[4:])), lines[1:])
	case strings.HasPrefix(first, "## "):
		return withTrailing(Heading2(InlineBold(first[3:])), lines[1:])
	case strings.HasPrefix(first, "# "):
		return withTrailing(Heading2(InlineBold(first[2:])), lines[1:])
	case isListItem(first):
		items := make([]string, 0, len(lines))
		for _, line := range lines {
			if isListItem(line) {
				items = append(items, InlineBold(line[2:]))
			}
		}
		return []Block{List(items...)}
	case isBoldLine(chunk):
		return []Block{BoldLine(chunk[len(strongMarker) : len(chunk)-len(strongMarker)])}
	default:
		return []Block{Paragraph(InlineBold(chunk))}
	}
}

func withTrailing(heading Block, rest []string) []Block {
	blocks := []Block{heading}
	for _, line := range rest {
		if strings.TrimSpace(line) == "" {
			continue
		}
		blocks = append(blocks, Paragraph(InlineBold(line)))
	}
	return blocks
}

func isListItem(line string) bool {
	return strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* ")
}

func isBoldLine(chunk string) bool {
	return len(chunk) >= 2*len(strongMarker) &&
		strings.HasPrefix(chunk, strongMarker) &&
		strings.HasSuffix(chunk, strongMarker)
}

// InlineBold replaces each complete **...** pair, left to right, with a
// strong element. An unmatched trailing marker stays literal.
func InlineBold(text string) string {
	var b strings.Builder
	for {
		open := strings.Index(text, strongMarker)
		if open < 0 {
			break
		}
		rest := text[open+len(strongMarker):]
		closing := strings.Index(rest, strongMarker)
		if closing < 0 {
			break
		}
		b.WriteString(text[:open])
		b.WriteString(strongOpen)
		b.WriteString(rest[:closing])
		b.WriteString(strongClose)
		text = rest[closing+len(strongMarker):]
	}
	b.WriteString(text)
	return b.String()
}
