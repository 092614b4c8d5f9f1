// Package content models the JSON bodies stored inside lesson activities:
// block lists for CONTENT activities and question sets for QUIZ activities.
// Bodies arrive as opaque strings and may be missing or malformed, so every
// parse here is tolerant.
package content

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// BlockType discriminates content blocks.
type BlockType string

const (
	BlockMarkdown BlockType = "markdown"
	BlockImage    BlockType = "image"
	BlockEmbed    BlockType = "embed"
	BlockCode     BlockType = "code"
)

// Block is one piece of a CONTENT activity. Fields beyond Type are populated
// per kind: MD for markdown, Src/Alt for image, URL for embed, Lang/Code for
// code.
type Block struct {
	Type BlockType `json:"type"`
	MD   string    `json:"md,omitempty"`
	Src  string    `json:"src,omitempty"`
	Alt  string    `json:"alt,omitempty"`
	URL  string    `json:"url,omitempty"`
	Lang string    `json:"lang,omitempty"`
	Code string    `json:"code,omitempty"`
}

// Body is the decoded CONTENT activity body.
type Body struct {
	Blocks []Block `json:"blocks"`
}

// ParseBody decodes an activity body string. Nil, empty or malformed input
// yields an empty body rather than an error, matching how viewers render
// "no content" instead of failing.
func ParseBody(raw *string) Body {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return Body{Blocks: []Block{}}
	}
	var b Body
	if err := json.Unmarshal([]byte(*raw), &b); err != nil || b.Blocks == nil {
		return Body{Blocks: []Block{}}
	}
	return b
}

// BuildBody assembles a body in render order (image, markdown, code),
// skipping empty parts. Markdown is always present so a bare-text activity
// still round-trips.
func BuildBody(imageSrc, imageAlt, markdown, codeLang, code string) Body {
	blocks := []Block{}
	if s := strings.TrimSpace(imageSrc); s != "" {
		alt := strings.TrimSpace(imageAlt)
		if alt == "" {
			alt = "Ilustracja do treści bloku"
		}
		blocks = append(blocks, Block{Type: BlockImage, Src: s, Alt: alt})
	}
	blocks = append(blocks, Block{Type: BlockMarkdown, MD: Sanitize(markdown)})
	if strings.TrimSpace(code) != "" {
		lang := codeLang
		if lang == "" {
			lang = "python"
		}
		blocks = append(blocks, Block{Type: BlockCode, Lang: lang, Code: code})
	}
	return Body{Blocks: blocks}
}

// Encode serializes a body back into the activity's string form.
func (b Body) Encode() (string, error) {
	raw, err := json.Marshal(b)
	if err != nil {
		return "", fmt.Errorf("encode body: %w", err)
	}
	return string(raw), nil
}

// First returns the first block of the given type, if any.
func (b Body) First(t BlockType) (Block, bool) {
	for _, blk := range b.Blocks {
		if blk.Type == t {
			return blk, true
		}
	}
	return Block{}, false
}

// ErrNotImage is returned when a file attached to an image block is not a
// recognizable image.
var ErrNotImage = errors.New("file is not an image")

// ImageBlockFromFile reads a local file, verifies it is an image and embeds
// it as a data URL image block.
func ImageBlockFromFile(path, alt string) (Block, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Block{}, fmt.Errorf("read image: %w", err)
	}
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return Block{}, fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}
	src := "data:" + mt.String() + ";base64," + base64.StdEncoding.EncodeToString(data)
	if strings.TrimSpace(alt) == "" {
		alt = "Ilustracja do treści bloku"
	}
	return Block{Type: BlockImage, Src: src, Alt: alt}, nil
}
