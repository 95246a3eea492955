// Package yaml parses YAML front matter blocks into domain metadata.
package yaml

import (
	"fmt"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/gitpress-labs/gitpress/internal/core/domain"
	"github.com/gitpress-labs/gitpress/internal/core/ports/driven"
)

// Ensure Parser implements the interface.
var _ driven.MetadataParser = (*Parser)(nil)

// Parser decodes YAML metadata blocks.
type Parser struct{}

// New creates a YAML metadata parser.
func New() *Parser {
	return &Parser{}
}

// frontMatter mirrors domain.FrontMatter with YAML field tags; the
// domain type stays free of serialisation concerns.
type frontMatter struct {
	Title      string     `yaml:"title"`
	Category   string     `yaml:"category"`
	Tags       []string   `yaml:"tags"`
	Published  *bool      `yaml:"published"`
	Author     string     `yaml:"author"`
	CreatedAt  *time.Time `yaml:"created_at"`
	UpdatedAt  *time.Time `yaml:"updated_at"`
	TitleImage string     `yaml:"title_image"`
}

// Parse decodes a metadata block. Invalid YAML returns
// domain.ErrInvalidFrontMatter; callers treat that as absent metadata.
func (p *Parser) Parse(data []byte) (*domain.FrontMatter, error) {
	var fm frontMatter
	if err := yaml.Unmarshal(data, &fm); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidFrontMatter, err)
	}

	return &domain.FrontMatter{
		Title:      fm.Title,
		Category:   fm.Category,
		Tags:       fm.Tags,
		Published:  fm.Published,
		Author:     fm.Author,
		CreatedAt:  fm.CreatedAt,
		UpdatedAt:  fm.UpdatedAt,
		TitleImage: fm.TitleImage,
	}, nil
}
