// Package format converts raw answer text into typed display blocks for the
// presentation layer.
package format

import (
	"regexp"
	"strings"
)

// Kind classifies a display block.
type Kind string

const (
	KindHeader    Kind = "header"
	KindParagraph Kind = "paragraph"
	KindList      Kind = "list"
)

// Block is one classified unit of display text. Text is set for headers and
// paragraphs, Items for lists.
type Block struct {
	Kind  Kind     `json:"kind"`
	Text  string   `json:"text,omitempty"`
	Items []string `json:"items,omitempty"`
}

const maxHeaderLen = 50

var (
	bulletRe  = regexp.MustCompile(`^([-*•])\s+`)
	ordinalRe = regexp.MustCompile(`^\d+\.\s+`)
	hashRe    = regexp.MustCompile(`^#+\s*`)
)

// Render splits text into an ordered block sequence. Blank lines are
// dropped; consecutive list items collapse into a single list block. It
// never fails: empty or unrecognized input yields an empty sequence.
func Render(text string) []Block {
	var blocks []Block
	var items []string

	flush := func() {
		if len(items) > 0 {
			blocks = append(blocks, Block{Kind: KindList, Items: items})
			items = nil
		}
	}

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if item, ok := listItem(line); ok {
			items = append(items, item)
			continue
		}
		flush()
		if header, ok := headerText(line); ok {
			blocks = append(blocks, Block{Kind: KindHeader, Text: header})
			continue
		}
		blocks = append(blocks, Block{Kind: KindParagraph, Text: line})
	}
	flush()
	return blocks
}

func listItem(line string) (string, bool) {
	if m := bulletRe.FindString(line); m != "" {
		return strings.TrimPrefix(line, m), true
	}
	if m := ordinalRe.FindString(line); m != "" {
		return strings.TrimPrefix(line, m), true
	}
	return "", false
}

func headerText(line string) (string, bool) {
	if m := hashRe.FindString(line); m != "" {
		return strings.TrimPrefix(line, m), true
	}
	if len(line) < maxHeaderLen && line == strings.ToUpper(line) {
		return line, true
	}
	return "", false
}
