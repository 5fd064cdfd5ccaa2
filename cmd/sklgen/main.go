package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/toki5537/skiplab/config"
	"github.com/toki5537/skiplab/workload"
)

const lockName = "gen.lock"

func newLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "optional YAML config path")

	cfg := config.DefaultGen()
	flag.IntVar(&cfg.N, "n", cfg.N, "number of keys for the generator")
	flag.Float64Var(&cfg.A, "a", cfg.A, "Zipf parameter a (0 = uniform distribution)")
	flag.Float64Var(&cfg.B, "b", cfg.B, "Zipf parameter b")
	flag.IntVar(&cfg.Ops, "k", cfg.Ops, "number of operations per file")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "base seed, incremented per file")
	flag.IntVar(&cfg.Files, "files", cfg.Files, "how many workload files to generate")
	flag.StringVar(&cfg.OutDir, "out", cfg.OutDir, "output directory")
	flag.Float64Var(&cfg.DeleteRatio, "deleteRatio", cfg.DeleteRatio, "ratio of delete operations")
	flag.Parse()

	logger := newLogger()

	if configPath != "" {
		loaded, err := config.LoadGen(configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("load config")
		}
		cfg = loaded
		// 命令列明確給的旗標優先於設定檔
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "n":
				fmt.Sscanf(f.Value.String(), "%d", &cfg.N)
			case "a":
				fmt.Sscanf(f.Value.String(), "%f", &cfg.A)
			case "b":
				fmt.Sscanf(f.Value.String(), "%f", &cfg.B)
			case "k":
				fmt.Sscanf(f.Value.String(), "%d", &cfg.Ops)
			case "seed":
				fmt.Sscanf(f.Value.String(), "%d", &cfg.Seed)
			case "files":
				fmt.Sscanf(f.Value.String(), "%d", &cfg.Files)
			case "out":
				cfg.OutDir = f.Value.String()
			case "deleteRatio":
				fmt.Sscanf(f.Value.String(), "%f", &cfg.DeleteRatio)
			}
		})
	}
	if cfg.N <= 0 || cfg.Ops < 0 || cfg.Files <= 0 {
		logger.Fatal().Int("n", cfg.N).Int("ops", cfg.Ops).Int("files", cfg.Files).
			Msg("invalid generation parameters")
	}

	if err := os.MkdirAll(cfg.OutDir, 0755); err != nil {
		logger.Fatal().Err(err).Str("dir", cfg.OutDir).Msg("create output directory")
	}

	// 鎖住輸出目錄，避免兩個產生器同時寫入互相覆蓋
	lock := flock.New(filepath.Join(cfg.OutDir, lockName))
	locked, err := lock.TryLock()
	if err != nil {
		logger.Fatal().Err(err).Msg("acquire directory lock")
	}
	if !locked {
		logger.Fatal().Str("dir", cfg.OutDir).Msg("another generator is writing to this directory")
	}
	defer lock.Unlock()

	start := time.Now()
	var g errgroup.Group
	for i := 0; i < cfg.Files; i++ {
		i := i
		g.Go(func() error {
			seed := cfg.Seed + int64(i)
			var gen workload.Generator
			if cfg.A == 0 {
				gen = workload.NewUniform(cfg.N, seed)
			} else {
				gen = workload.NewZipf(cfg.N, cfg.A, cfg.B, seed)
			}

			name := fmt.Sprintf("work_n%d_k%d_s%d.bin", cfg.N, cfg.Ops, seed)
			path := filepath.Join(cfg.OutDir, name)
			if err := workload.WriteFile(gen, cfg.Ops, cfg.DeleteRatio, seed, path); err != nil {
				return err
			}
			logger.Info().Str("file", path).Msg("generated")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.Fatal().Err(err).Msg("generate workload files")
	}

	logger.Info().Int("files", cfg.Files).Dur("elapsed", time.Since(start)).Msg("done")
}
