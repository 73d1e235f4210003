package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/vk/fileformatgo/internal/config"
	"github.com/vk/fileformatgo/internal/ctxlog"
	"github.com/vk/fileformatgo/internal/fsutil"
	"github.com/vk/fileformatgo/internal/hclspec"
	"github.com/vk/fileformatgo/internal/yamlspec"
)

// loaderFor picks the specification loader matching the document's file
// extension.
func loaderFor(path string) (config.Loader, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".hcl":
		return hclspec.NewLoader(), nil
	case ".yml", ".yaml":
		return yamlspec.NewLoader(), nil
	}
	return nil, config.NewConfigurationError(path, "unrecognized specification document extension")
}

// loadFormat resolves and loads the format specification named by the
// config: either a direct document path, or a lookup by format name in a
// directory of documents.
func loadFormat(ctx context.Context, cfg *Config) (*config.Format, error) {
	logger := ctxlog.FromContext(ctx)

	if cfg.SpecPath != "" {
		loader, err := loaderFor(cfg.SpecPath)
		if err != nil {
			return nil, err
		}
		return loader.Load(ctx, cfg.SpecPath)
	}

	logger.Debug("Resolving format by name.", "formats_path", cfg.FormatsPath, "format_name", cfg.FormatName)
	files, err := fsutil.FindSpecFiles(cfg.FormatsPath)
	if err != nil {
		return nil, config.NewConfigurationError(cfg.FormatsPath, "%s", err.Error())
	}

	// Fast path: a document whose basename matches the format name.
	for _, file := range files {
		base := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
		if base != cfg.FormatName {
			continue
		}
		loader, err := loaderFor(file)
		if err != nil {
			continue
		}
		format, err := loader.Load(ctx, file)
		if err != nil {
			return nil, err
		}
		return format, nil
	}

	// Otherwise load every document and match on the declared name.
	for _, file := range files {
		loader, err := loaderFor(file)
		if err != nil {
			continue
		}
		format, err := loader.Load(ctx, file)
		if err != nil {
			logger.Warn("Skipping unreadable specification document.", "path", file, "error", err)
			continue
		}
		if format.Name == cfg.FormatName {
			return format, nil
		}
	}

	return nil, config.NewConfigurationError(cfg.FormatsPath, "no specification found for format %q", cfg.FormatName)
}
