package interfaces

import "context"

// ArticleSource supplies the markdown article for a topic. The research and
// writing agents live behind this contract; the module only consumes the
// markdown string they return.
type ArticleSource interface {
	Article(ctx context.Context, topic string) (string, error)
}

// Artifact is a rendered download handed to an ArtifactSink.
type Artifact struct {
	Format   string
	Filename string
	MIMEType string
	Data     []byte
}

// ArtifactSink delivers rendered artifacts (file download, disk, object store).
type ArtifactSink interface {
	Deliver(ctx context.Context, artifacts []Artifact) error
}
