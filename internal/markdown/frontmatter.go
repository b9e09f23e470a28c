package markdown

import (
	"bytes"
	"fmt"
	"maps"

	"github.com/adrg/frontmatter"

	"github.com/goliatone/go-article/pkg/interfaces"
)

// ParseFrontMatter splits an optional YAML or TOML header from the article
// body. Sources without a header come back unchanged with an empty
// FrontMatter.
func ParseFrontMatter(source []byte) (interfaces.FrontMatter, []byte, error) {
	var meta frontMatterEnvelope

	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		return interfaces.FrontMatter{}, nil, fmt.Errorf("parse frontmatter: %w", err)
	}

	return envelopeToFrontMatter(meta), body, nil
}

type frontMatterEnvelope struct {
	Title   string         `yaml:"title" toml:"title"`
	Slug    string         `yaml:"slug" toml:"slug"`
	Summary string         `yaml:"summary" toml:"summary"`
	Topic   string         `yaml:"topic" toml:"topic"`
	Tags    []string       `yaml:"tags" toml:"tags"`
	Author  string         `yaml:"author" toml:"author"`
	Custom  map[string]any `yaml:",inline"`
}

func envelopeToFrontMatter(env frontMatterEnvelope) interfaces.FrontMatter {
	custom := maps.Clone(env.Custom)
	if custom == nil {
		custom = map[string]any{}
	}

	raw := maps.Clone(custom)
	set := func(key, value string) {
		if value != "" {
			raw[key] = value
		}
	}
	set("title", env.Title)
	set("slug", env.Slug)
	set("summary", env.Summary)
	set("topic", env.Topic)
	set("author", env.Author)
	if len(env.Tags) > 0 {
		raw["tags"] = append([]string(nil), env.Tags...)
	}

	return interfaces.FrontMatter{
		Title:   env.Title,
		Slug:    env.Slug,
		Summary: env.Summary,
		Topic:   env.Topic,
		Tags:    append([]string(nil), env.Tags...),
		Author:  env.Author,
		Custom:  custom,
		Raw:     raw,
	}
}
