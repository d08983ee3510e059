// Package cnis turns the plain text of a CNIS registry extract into structured bonds.
//
// The stages are small pure functions (ExtractProfile, SegmentText, ExtractFields,
// ExtractRemunerations, InferEndDate) that Parser runs in order. None of them
// performs I/O or keeps state between calls.
package cnis

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/Veraticus/cnis-flow/internal/common"
	"github.com/Veraticus/cnis-flow/internal/model"
)

// Parser extracts a model.Extract from document text.
type Parser struct {
	logger      *slog.Logger
	headerLimit int
}

// Option configures a Parser.
type Option func(*Parser)

// WithHeaderLimit overrides the header cap used when a block has no remuneration marker.
func WithHeaderLimit(n int) Option {
	return func(p *Parser) {
		if n > 0 {
			p.headerLimit = n
		}
	}
}

// WithLogger sets the logger used for per-bond diagnostics.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Parser) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// NewParser creates a new CNIS parser.
func NewParser(opts ...Option) *Parser {
	p := &Parser{
		logger:      slog.Default(),
		headerLimit: DefaultHeaderLimit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse extracts the subject profile and every bond of the document.
//
// Blank input returns common.ErrEmptyDocument. Input with text but no bond
// anchor returns common.ErrDocumentNotRecognized; an empty bond list is never
// reported as success. Missing fields never fail the parse.
func (p *Parser) Parse(text string) (*model.Extract, error) {
	if strings.TrimSpace(text) == "" {
		return nil, common.ErrEmptyDocument
	}

	text = Normalize(text)

	segments := SegmentText(text)
	if len(segments) == 0 {
		return nil, fmt.Errorf("%w: no bond anchors in %d characters of text", common.ErrDocumentNotRecognized, len(text))
	}

	extract := &model.Extract{
		Profile: ExtractProfile(text[:segments[0].Offset]),
		Bonds:   make([]model.Bond, 0, len(segments)),
	}
	if extract.Profile.Name == nil {
		// Some layouts print the identity block after the first bond.
		extract.Profile = ExtractProfile(text)
	}

	blocks, merged := mergeRepeatedSequences(segments)
	for _, seq := range merged {
		extract.Warnings = append(extract.Warnings,
			fmt.Sprintf("sequence %d appears in more than one block; blocks were merged", seq))
	}

	for _, block := range blocks {
		bond := p.ParseBond(block)
		if bond.Start == nil {
			extract.Warnings = append(extract.Warnings,
				fmt.Sprintf("sequence %d has no start date", bond.Sequence))
		}
		extract.Bonds = append(extract.Bonds, bond)
	}

	p.logger.Info("Parsed CNIS document",
		"bonds", len(extract.Bonds),
		"warnings", len(extract.Warnings),
		"profile_name_found", extract.Profile.Name != nil)

	return extract, nil
}

// ParseBond runs field extraction, remuneration extraction and end-date
// inference on a single bond block.
func (p *Parser) ParseBond(block string) model.Bond {
	fields := ExtractFields(block, p.headerLimit)
	months := extractRemunerations(block, p.logger)

	bond := fields.Bond
	bond.Remunerations = months
	if bond.End == nil {
		bond.End, bond.EndSource = InferEndDate(block, fields, months)
	}

	p.logger.Debug("Parsed bond",
		"sequence", bond.Sequence,
		"category", bond.Category,
		"origin", bond.OriginName,
		"start", dateString(bond.Start),
		"end", dateString(bond.End),
		"end_source", bond.EndSource,
		"remunerations", len(bond.Remunerations))

	return bond
}

// mergeRepeatedSequences joins blocks that repeat an earlier sequence number,
// as happens when a bond continues on a new page under a repeated header line.
// Block order follows the first appearance of each sequence.
func mergeRepeatedSequences(segments []Segment) (blocks []string, merged []int) {
	index := make(map[int]int, len(segments))
	for _, seg := range segments {
		seq := seg.Sequence()
		if i, ok := index[seq]; ok {
			blocks[i] += seg.Text
			merged = append(merged, seq)
			continue
		}
		index[seq] = len(blocks)
		blocks = append(blocks, seg.Text)
	}
	return blocks, merged
}

func dateString(d *model.Date) string {
	if d == nil {
		return ""
	}
	return d.String()
}
