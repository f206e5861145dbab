package markdown

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-markers/internal/util"
	"github.com/goliatone/go-markers/pkg/interfaces"
)

// ParseFrontMatter extracts the fixture metadata and body from source.
func ParseFrontMatter(source []byte) (interfaces.FixtureFrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FixtureFrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	fm, err := envelopeToFrontMatter(meta)
	if err != nil {
		return interfaces.FixtureFrontMatter{}, nil, err
	}
	return fm, body, nil
}

// BuildFixture assembles a fixture from its path, raw content and
// modification time. Markup is left empty so callers can render lazily.
func BuildFixture(path string, source []byte, modified time.Time) (*interfaces.Fixture, error) {
	fm, body, err := ParseFrontMatter(source)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	fm.Name = util.FirstNonEmpty(fm.Name, strings.TrimSuffix(filepath.Base(filepath.FromSlash(path)), filepath.Ext(path)))

	return &interfaces.Fixture{
		FilePath:     path,
		FrontMatter:  fm,
		Body:         body,
		LastModified: modified,
	}, nil
}

type frontMatterEnvelope struct {
	Name   string         `yaml:"name"`
	Format string         `yaml:"format"`
	Start  []int          `yaml:"start"`
	End    []int          `yaml:"end"`
	Hint   string         `yaml:"hint"`
	Skip   bool           `yaml:"skip"`
	Custom map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) (interfaces.FixtureFrontMatter, error) {
	format := interfaces.FixtureFormat(strings.ToLower(strings.TrimSpace(env.Format)))
	switch format {
	case "":
		format = interfaces.FixtureFormatHTML
	case interfaces.FixtureFormatHTML, interfaces.FixtureFormatMarkdown:
	case "md":
		format = interfaces.FixtureFormatMarkdown
	default:
		return interfaces.FixtureFrontMatter{}, fmt.Errorf("%w: %q", ErrUnknownFormat, env.Format)
	}

	return interfaces.FixtureFrontMatter{
		Name:   strings.TrimSpace(env.Name),
		Format: format,
		Start:  append([]int(nil), env.Start...),
		End:    append([]int(nil), env.End...),
		Hint:   strings.TrimSpace(env.Hint),
		Skip:   env.Skip,
		Custom: util.CloneAnyMap(env.Custom),
	}, nil
}
