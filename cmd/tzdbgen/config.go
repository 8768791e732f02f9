package main

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// config holds the settings that drive a single run of tzdbgen. Precedence,
// highest wins: explicit flags > TZDBGEN_-prefixed env vars > a
// tzdbgen.{yaml,yml,json,toml} file in the working directory > defaults.
type config struct {
	OutputFile  string `mapstructure:"output_file"`
	PackageName string `mapstructure:"package_name"`
	ETagFile    string `mapstructure:"etag_file"`
	ArchivePath string `mapstructure:"archive_path"`
	LogLevel    string `mapstructure:"log_level"`
}

func allConfigKeys() []string {
	return []string{"output_file", "package_name", "etag_file", "archive_path", "log_level"}
}

func loadConfig(logger *zap.Logger) (*config, error) {
	pflag.String("output_file", "tzdb/data_generated.go", "path to write the generated Go source to")
	pflag.String("package_name", "tzdb", "package name for the generated source")
	pflag.String("etag_file", ".tzdbgen-etag", "file used to cache the release ETag between runs")
	pflag.String("archive_path", "", "local tzdata-*.tar.gz to compile instead of downloading the latest release")
	pflag.String("log_level", "info", "log level: debug, info, warn, error")
	pflag.Parse()

	v := viper.New()
	v.SetEnvPrefix("TZDBGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	for _, k := range allConfigKeys() {
		_ = v.BindEnv(k)
	}

	for _, ext := range [...]string{"yaml", "yml", "json", "toml"} {
		file := "tzdbgen." + ext
		b, err := os.ReadFile(file)
		if err != nil {
			continue
		}
		v.SetConfigType(ext)
		if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
			logger.Warn("cannot decode config file", zap.String("file", file), zap.Error(err))
			continue
		}
		logger.Info("loaded config file", zap.String("file", file))
	}

	v.SetDefault("output_file", "tzdb/data_generated.go")
	v.SetDefault("package_name", "tzdb")
	v.SetDefault("etag_file", ".tzdbgen-etag")
	v.SetDefault("archive_path", "")
	v.SetDefault("log_level", "info")

	pflag.CommandLine.VisitAll(func(f *pflag.Flag) {
		if f.Changed {
			_ = v.BindPFlag(f.Name, f)
		}
	})

	var cfg config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	return &cfg, nil
}
