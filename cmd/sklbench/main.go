package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/toki5537/skiplab/skiplist"
	"github.com/toki5537/skiplab/skiplist/btreemap"
	"github.com/toki5537/skiplab/skiplist/classic"
	"github.com/toki5537/skiplab/skiplist/inspect"
	"github.com/toki5537/skiplab/workload"
)

var allImpls = []string{"classic", "btree"}

func main() {
	var file string
	var dir string
	var impls string
	var runs int
	var seed int64

	flag.StringVar(&file, "file", "", "existing workload file (SLWORK01 format)")
	flag.StringVar(&dir, "dir", "", "directory containing workload .bin files (all will be run)")
	flag.StringVar(&impls, "impl", "all", "implementations to run: all or comma list (classic,btree)")
	flag.IntVar(&runs, "runs", 5, "how many times to repeat each benchmark")
	flag.Int64Var(&seed, "seed", 42, "seed for the skip list height coin")
	flag.Parse()

	var paths []string
	switch {
	case dir != "":
		files, err := collectWorkloadFiles(dir)
		if err != nil {
			log.Fatalf("scan directory %s: %v", dir, err)
		}
		if len(files) == 0 {
			log.Fatalf("no .bin files found in directory: %s", dir)
		}
		paths = files
	case file != "":
		paths = []string{file}
	default:
		log.Fatalf("either -file or -dir must be provided")
	}

	toRun := parseImpls(impls)
	fmt.Printf("implementations to test: %s\n", strings.Join(toRun, ","))
	fmt.Println(strings.Repeat("=", 80))

	for _, path := range paths {
		runBenchmark(path, toRun, runs, seed)
	}
}

// collectWorkloadFiles 收集指定目錄下所有 .bin 檔案
func collectWorkloadFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && filepath.Ext(path) == ".bin" {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func parseImpls(s string) []string {
	if s == "" || s == "all" {
		return allImpls
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}

func newImpl(name string, seed int64) skiplist.List {
	switch name {
	case "classic":
		return classic.New(seed)
	case "btree":
		return btreemap.New(0)
	default:
		log.Fatalf("unknown implementation: %s", name)
		return nil
	}
}

type benchStats struct {
	avgMs float64
	minMs float64
	maxMs float64
}

// runBenchmark 執行單一 workload 檔案的測試
func runBenchmark(path string, toRun []string, runs int, seed int64) {
	f, err := workload.ReadFile(path)
	if err != nil {
		log.Printf("ERROR reading workload file %s: %v", path, err)
		return
	}

	fmt.Printf("workload_file: %s\n", path)
	fmt.Printf("ops: %d\n", len(f.Ops))
	fmt.Printf("entropy: %.6f\n", computeEntropy(f.Dist))

	rows := make([][]string, 0, len(toRun))
	for _, impl := range toRun {
		fmt.Printf("benchmarking %s...\n", impl)
		stats, structOK := benchmarkImpl(f, impl, runs, seed)
		thr := float64(len(f.Ops)) / (stats.avgMs / 1000.0)
		rows = append(rows, []string{
			impl,
			fmt.Sprintf("%d", runs),
			fmt.Sprintf("%.3f", stats.avgMs),
			fmt.Sprintf("%.3f", stats.minMs),
			fmt.Sprintf("%.3f", stats.maxMs),
			fmt.Sprintf("%.2f", thr),
			structOK,
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Impl", "Runs", "Avg(ms)", "Min(ms)", "Max(ms)", "Ops/s", "StructOK"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

func benchmarkImpl(f *workload.File, impl string, runs int, seed int64) (benchStats, string) {
	durations := make([]float64, 0, runs)
	structOK := "N/A"
	for i := 0; i < runs; i++ {
		l := newImpl(impl, seed)
		start := time.Now()
		f.Replay(l)
		elapsed := time.Since(start)
		durations = append(durations, float64(elapsed.Microseconds())/1000.0)

		if analy, ok := l.(skiplist.Analyable); ok && structOK == "N/A" {
			if err := inspect.CheckStruct(analy); err != nil {
				structOK = fmt.Sprintf("FAIL: %v", err)
			} else {
				structOK = "ok"
			}
		}
	}
	return benchStats{
		avgMs: average(durations),
		minMs: minOf(durations),
		maxMs: maxOf(durations),
	}, structOK
}

func computeEntropy(dist map[skiplist.K]float64) float64 {
	h := 0.0
	for _, p := range dist {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}

func average(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func minOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func maxOf(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return m
}
