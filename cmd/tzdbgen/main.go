// Command tzdbgen downloads (or reads a local copy of) an IANA tzdata
// release and compiles it into a Go source file declaring a tzdb.Database,
// the same shape tzdb/data_generated.go hand-writes for the bundled sample
// zones.
package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/tzres-go/tzres/internal/tzdbgen"
	"github.com/tzres-go/tzres/tzdata"
	"github.com/tzres-go/tzres/tzdb/ianadist"
)

func main() {
	logger := newLogger("info")
	defer logger.Sync()

	if err := run(logger); err != nil {
		logger.Fatal("tzdbgen failed", zap.Error(err))
	}
}

func run(logger *zap.Logger) error {
	cfg, err := loadConfig(logger)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger = newLogger(cfg.LogLevel)

	release, err := fetchRelease(context.Background(), logger, cfg)
	if err != nil {
		return err
	}
	if release == nil {
		logger.Info("release unchanged since last run, nothing to do")
		return nil
	}
	logger.Info("using release", zap.String("version", release.Version), zap.Int("files", len(release.DataFiles)))

	parsed := make(map[string]tzdata.File, len(release.DataFiles))
	for name, contents := range release.DataFiles {
		f, err := tzdata.Parse(bytes.NewReader(contents))
		if err != nil {
			return fmt.Errorf("parsing %s: %w", name, err)
		}
		parsed[name] = f
	}

	merged := tzdbgen.MergeFiles(parsed)
	db, err := tzdbgen.Compile(merged)
	if err != nil {
		return fmt.Errorf("compiling database: %w", err)
	}
	logger.Info("compiled database", zap.Int("zones", len(db.Zones)), zap.Int("aliases", len(db.Aliases)), zap.Int("rule_families", len(db.RuleFamilies)))

	src, err := tzdbgen.GenerateSource(cfg.PackageName, release.Version, db)
	if err != nil {
		return fmt.Errorf("generating source: %w", err)
	}

	if err := os.WriteFile(cfg.OutputFile, src, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", cfg.OutputFile, err)
	}
	logger.Info("wrote generated database", zap.String("file", cfg.OutputFile))
	return nil
}

// fetchRelease returns a local archive's contents when cfg.ArchivePath is
// set, otherwise downloads the latest release, using cfg.ETagFile to avoid
// re-downloading an unchanged one. A nil, nil result means the release is
// unchanged.
func fetchRelease(ctx context.Context, logger *zap.Logger, cfg *config) (*ianadist.Release, error) {
	if cfg.ArchivePath != "" {
		f, err := os.Open(cfg.ArchivePath)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", cfg.ArchivePath, err)
		}
		defer f.Close()
		return ianadist.ReadArchive(f)
	}

	etag := readETag(cfg.ETagFile)
	release, newETag, err := ianadist.Latest(ctx, etag)
	if err != nil {
		return nil, fmt.Errorf("downloading latest release: %w", err)
	}
	if release == nil {
		return nil, nil
	}
	if err := os.WriteFile(cfg.ETagFile, []byte(newETag), 0o644); err != nil {
		logger.Warn("cannot persist etag", zap.String("file", cfg.ETagFile), zap.Error(err))
	}
	return release, nil
}

func readETag(path string) string {
	b, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(b))
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.TimeKey = ""
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if err := cfg.Level.UnmarshalText([]byte(level)); err != nil {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
