// Package goldmark outlines the fenced code blocks of a Markdown document
// using the goldmark parser. The outline lets the fix pipeline confirm that
// indentation fixes did not open, close or swallow a code block.
package goldmark

import (
	"context"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/docstyle/pkg/mdast"
)

// Flavor identifies the Markdown flavor supported by the parser.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// ErrFencesChanged is returned by Verify when fixed content no longer has
// the fenced code blocks of the original.
var ErrFencesChanged = errors.New("fenced code block structure changed")

// FencedBlock describes one fenced code block.
type FencedBlock struct {
	// Line is the 1-based line of the opening fence, or 0 when it cannot be
	// located (an empty block without an info string).
	Line int

	// Info is the info string after the opening fence.
	Info string

	// ContentLines is the number of lines between the fences.
	ContentLines int
}

// Parser outlines documents with a configured goldmark instance.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a parser for the given flavor.
// Unknown flavors default to "commonmark".
func New(flavor string) *Parser {
	f := flavorOrDefault(flavor)
	return &Parser{
		flavor: f,
		md:     newGoldmarkInstance(f),
	}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Outline parses content and returns its fenced code blocks in document order.
func (p *Parser) Outline(ctx context.Context, content []byte) ([]FencedBlock, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("outline cancelled: %w", err)
	}

	doc := p.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))
	snapshot := mdast.NewFileSnapshot("", content)

	var blocks []FencedBlock
	err := ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fenced, ok := node.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		block := FencedBlock{ContentLines: fenced.Lines().Len()}
		if fenced.Info != nil {
			block.Info = string(fenced.Info.Segment.Value(content))
			block.Line, _ = snapshot.LineAt(fenced.Info.Segment.Start)
		} else if block.ContentLines > 0 {
			first, _ := snapshot.LineAt(fenced.Lines().At(0).Start)
			block.Line = first - 1
		}
		blocks = append(blocks, block)

		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk document: %w", err)
	}

	return blocks, nil
}

// SameFences reports whether two outlines describe the same fenced block
// structure. Line numbers are ignored since fixes may delete lines.
func SameFences(before, after []FencedBlock) bool {
	if len(before) != len(after) {
		return false
	}
	for i := range before {
		if before[i].Info != after[i].Info || before[i].ContentLines != after[i].ContentLines {
			return false
		}
	}
	return true
}

// Verify outlines both versions of a document and fails with
// ErrFencesChanged when their fenced code blocks differ.
func (p *Parser) Verify(ctx context.Context, before, after []byte) error {
	original, err := p.Outline(ctx, before)
	if err != nil {
		return err
	}
	fixed, err := p.Outline(ctx, after)
	if err != nil {
		return err
	}
	if !SameFences(original, fixed) {
		return fmt.Errorf("%w: %d block(s) before, %d after", ErrFencesChanged, len(original), len(fixed))
	}
	return nil
}

func flavorOrDefault(flavor string) string {
	switch flavor {
	case FlavorCommonMark, FlavorGFM:
		return flavor
	default:
		return FlavorCommonMark
	}
}

//nolint:ireturn // goldmark.Markdown is an external interface type
func newGoldmarkInstance(flavor string) goldmark.Markdown {
	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}
	return goldmark.New(opts...)
}
