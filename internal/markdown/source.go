package markdown

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"slices"
	"strings"
	"time"

	"github.com/goliatone/go-article/internal/filename"
	"github.com/goliatone/go-article/pkg/interfaces"
)

// ErrArticleNotFound is returned when no file in the source matches a topic.
var ErrArticleNotFound = errors.New("markdown source: article not found")

// SourceConfig configures how article files are discovered.
type SourceConfig struct {
	// Root is the directory inside the filesystem that holds the articles.
	Root string
	// Pattern limits discovered files to those matching the glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Source serves pre-written articles from a filesystem. It satisfies
// interfaces.ArticleSource by matching a topic against each file's front
// matter topic or title, then against its sanitized file name.
type Source struct {
	fs        fs.FS
	root      string
	pattern   string
	recursive bool
}

var _ interfaces.ArticleSource = (*Source)(nil)

// SourceDocument is one article file with its parsed header.
type SourceDocument struct {
	Path        string
	FrontMatter interfaces.FrontMatter
	Body        []byte
	Source      []byte
	Checksum    []byte
	Modified    time.Time
}

// NewSource constructs a Source over filesystem.
func NewSource(filesystem fs.FS, cfg SourceConfig) *Source {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}
	root := path.Clean(strings.TrimPrefix(cfg.Root, "/"))
	if root == "" {
		root = "."
	}
	return &Source{
		fs:        filesystem,
		root:      root,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// Article returns the raw source, front matter included, of the article
// written for topic.
func (s *Source) Article(ctx context.Context, topic string) (string, error) {
	docs, err := s.LoadAll(ctx)
	if err != nil {
		return "", err
	}

	want := strings.TrimSpace(topic)
	for _, doc := range docs {
		if strings.EqualFold(doc.FrontMatter.Topic, want) || strings.EqualFold(doc.FrontMatter.Title, want) {
			return string(doc.Source), nil
		}
	}

	base := filename.Sanitize(want)
	for _, doc := range docs {
		name := strings.TrimSuffix(path.Base(doc.Path), path.Ext(doc.Path))
		if filename.Sanitize(name) == base {
			return string(doc.Source), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrArticleNotFound, topic)
}

// LoadFile reads and parses a single article relative to the source root.
func (s *Source) LoadFile(ctx context.Context, name string) (*SourceDocument, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	rel := path.Clean(strings.TrimPrefix(name, "/"))
	data, err := fs.ReadFile(s.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown source read %s: %w", rel, err)
	}
	info, err := fs.Stat(s.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown source stat %s: %w", rel, err)
	}

	meta, body, err := ParseFrontMatter(data)
	if err != nil {
		return nil, fmt.Errorf("markdown source %s: %w", rel, err)
	}
	sum := sha256.Sum256(data)

	return &SourceDocument{
		Path:        rel,
		FrontMatter: meta,
		Body:        body,
		Source:      data,
		Checksum:    sum[:],
		Modified:    info.ModTime(),
	}, nil
}

// LoadAll discovers every matching article under the root, sorted by path.
func (s *Source) LoadAll(ctx context.Context) ([]*SourceDocument, error) {
	var docs []*SourceDocument

	walkErr := fs.WalkDir(s.fs, s.root, func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if current != s.root && !s.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.matchesPattern(current) {
			return nil
		}

		doc, err := s.LoadFile(ctx, current)
		if err != nil {
			return err
		}
		docs = append(docs, doc)
		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	slices.SortFunc(docs, func(a, b *SourceDocument) int {
		return strings.Compare(a.Path, b.Path)
	})
	return docs, nil
}

func (s *Source) matchesPattern(current string) bool {
	pattern := strings.ReplaceAll(s.pattern, "**/", "")
	target := current
	if !strings.Contains(pattern, "/") {
		target = path.Base(current)
	}
	match, err := path.Match(pattern, target)
	return err == nil && match
}
