package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-article/pkg/interfaces"
)

const (
	rootModule     = "article"
	convertModule  = "article.convert"
	docxModule     = "article.docx"
	exportModule   = "article.export"
	commandsModule = "article.commands"
)

const (
	fieldTopic    = "topic"
	fieldFilename = "filename"
	fieldFormat   = "format"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// ConvertLogger returns the logger namespace reserved for the conversion pipeline.
func ConvertLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, convertModule)
}

// DOCXLogger returns the logger namespace reserved for the DOCX writer.
func DOCXLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, docxModule)
}

// ExportLogger returns the logger namespace reserved for export workflows.
func ExportLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, exportModule)
}

// CommandLogger returns a logger scoped to article.commands.<name>, tagged
// with the command component. An empty name selects "core".
func CommandLogger(provider interfaces.LoggerProvider, name string) interfaces.Logger {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "core"
	}
	return WithFields(ModuleLogger(provider, commandsModule+"."+name), map[string]any{
		"component":      "command",
		"command_module": name,
	})
}

// WithExportContext enriches the logger with the topic, filename and format
// of an export.
func WithExportContext(logger interfaces.Logger, topic, filename, format string) interfaces.Logger {
	return WithFields(logger, map[string]any{
		fieldTopic:    strings.TrimSpace(topic),
		fieldFilename: strings.TrimSpace(filename),
		fieldFormat:   strings.TrimSpace(format),
	})
}

// WithFields attaches fields when logger implements interfaces.FieldsLogger.
// Nil values and empty strings are dropped.
func WithFields(logger interfaces.Logger, fields map[string]any) interfaces.Logger {
	if logger == nil {
		return nil
	}
	fieldsLogger, ok := logger.(interfaces.FieldsLogger)
	if !ok {
		return logger
	}

	kept := make(map[string]any, len(fields))
	for key, value := range fields {
		if value == nil || value == "" {
			continue
		}
		kept[key] = value
	}
	if len(kept) == 0 {
		return logger
	}
	return fieldsLogger.WithFields(kept)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
