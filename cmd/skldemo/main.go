package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/toki5537/skiplab/config"
	"github.com/toki5537/skiplab/skiplist"
	"github.com/toki5537/skiplab/skiplist/classic"
	"github.com/toki5537/skiplab/skiplist/inspect"
)

func newLogger() zerolog.Logger {
	output := zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	return zerolog.New(output).With().Timestamp().Logger()
}

func printDump(sl skiplist.List) {
	for _, row := range sl.Dump() {
		fmt.Println(row)
	}
	fmt.Println()
}

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "optional YAML config path")

	cfg := config.DefaultDemo()
	flag.IntVar(&cfg.Count, "n", cfg.Count, "number of random keys to insert")
	flag.Int64Var(&cfg.KeyRange, "range", cfg.KeyRange, "keys are drawn from [0, range)")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed (0 = time based)")
	flag.IntVar(&cfg.ProbeEvery, "probe", cfg.ProbeEvery, "probe every n-th inserted key")
	flag.Parse()

	logger := newLogger()

	if configPath != "" {
		loaded, err := config.LoadDemo(configPath)
		if err != nil {
			logger.Fatal().Err(err).Msg("load config")
		}
		cfg = loaded
		// 命令列明確給的旗標優先於設定檔
		flag.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "n":
				fmt.Sscanf(f.Value.String(), "%d", &cfg.Count)
			case "range":
				fmt.Sscanf(f.Value.String(), "%d", &cfg.KeyRange)
			case "seed":
				fmt.Sscanf(f.Value.String(), "%d", &cfg.Seed)
			case "probe":
				fmt.Sscanf(f.Value.String(), "%d", &cfg.ProbeEvery)
			}
		})
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if cfg.ProbeEvery <= 0 {
		cfg.ProbeEvery = 1
	}

	logger.Info().Int("count", cfg.Count).Int64("keyRange", cfg.KeyRange).
		Int64("seed", seed).Msg("inserting random keys")

	sl := classic.New(seed)
	rng := rand.New(rand.NewSource(seed))
	keys := make([]skiplist.K, cfg.Count)
	for i := range keys {
		k := rng.Int63n(cfg.KeyRange)
		keys[i] = k
		sl.Insert(k, fmt.Sprintf("\"%d\"", k))
	}

	printDump(sl)
	fmt.Println(inspect.Render(sl, 8, 35))

	for i := 0; i < len(keys); i += cfg.ProbeEvery {
		key := keys[i]

		v, ok := sl.Search(key)
		logger.Info().Int64("key", key).Str("value", v).Bool("found", ok).
			Msg("find element")

		v, ok = sl.Remove(key)
		logger.Info().Int64("key", key).Str("value", v).Bool("removed", ok).
			Msg("remove element")

		_, ok = sl.Search(key)
		logger.Info().Int64("key", key).Bool("found", ok).
			Msg("find the removed element")
	}

	printDump(sl)

	if err := inspect.CheckStruct(sl); err != nil {
		logger.Fatal().Err(err).Msg("structure check failed")
	}
	logger.Info().Int("size", sl.Size()).Int("level", sl.Level()).Msg("done")
}
