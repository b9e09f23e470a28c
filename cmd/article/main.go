package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/goliatone/go-command/dispatcher"

	"github.com/goliatone/go-article/cmd/article/internal/bootstrap"
	exportcmd "github.com/goliatone/go-article/internal/commands/export"
)

var moduleBuilder = bootstrap.BuildModule

func main() {
	if err := runExport(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		log.Fatalf("article export: %v", err)
	}
}

func runExport(ctx context.Context, args []string, stdin io.Reader, stdout io.Writer) error {
	fs := flag.NewFlagSet("article", flag.ContinueOnError)
	input := fs.String("in", "-", "Markdown file, article directory, or - for stdin")
	topic := fs.String("topic", "", "Article topic; selects the article when -in is a directory")
	outDir := fs.String("out", ".", "Directory receiving the exported files")
	formats := fs.String("formats", "markdown,docx", "Comma separated export formats (markdown, docx, html)")
	recursive := fs.Bool("recursive", false, "Search sub-directories when -in is a directory")
	titleFallback := fs.Bool("title-fallback", true, "Use the topic as the document title when the article has none")
	logLevel := fs.String("log-level", "", "Enable logging at the given level (trace, debug, info, warn, error)")
	logFormat := fs.String("log-format", "", "Structured log format (json, console); switches to go-logger")
	retries := fs.Int("retries", 0, "Retry failed exports this many times")

	if err := fs.Parse(args); err != nil {
		return err
	}

	cmd := exportcmd.ExportArticleCommand{
		Topic:   strings.TrimSpace(*topic),
		Formats: bootstrap.SplitFormats(*formats),
	}
	opts := bootstrap.Options{
		OutputDir:     *outDir,
		Formats:       cmd.Formats,
		LogLevel:      *logLevel,
		LogFormat:     *logFormat,
		TitleFallback: titleFallback,
		Retries:       *retries,
		Recursive:     *recursive,
	}

	switch path := strings.TrimSpace(*input); {
	case path == "" || path == "-":
		data, err := io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		cmd.Markdown = string(data)
	default:
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("stat input: %w", err)
		}
		if info.IsDir() {
			if cmd.Topic == "" {
				return fmt.Errorf("-topic is required when -in is a directory")
			}
			opts.ArticleDir = path
			break
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("read input: %w", err)
		}
		cmd.Markdown = string(data)
	}

	module, err := moduleBuilder(opts)
	if err != nil {
		return fmt.Errorf("bootstrap module: %w", err)
	}
	defer module.Module.Close()

	if err := dispatcher.Dispatch(ctx, cmd); err != nil {
		return fmt.Errorf("dispatch export command: %w", err)
	}

	result := module.LastResult()
	if result == nil {
		fmt.Fprintln(stdout, "export command executed")
		return nil
	}

	fmt.Fprintf(stdout, "Title: %s\nBlocks: %d\nLinks: %d\n", result.Title, result.Stats.Blocks, result.Stats.Links)
	for _, artifact := range result.Artifacts {
		fmt.Fprintf(stdout, "  %-8s %s (%s)\n", artifact.Format, artifact.Filename, humanize.Bytes(uint64(len(artifact.Data))))
	}
	for _, failure := range result.Errors {
		fmt.Fprintf(stdout, "  failed: %v\n", failure)
	}
	return nil
}
