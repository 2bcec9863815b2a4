package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/Hakuto4838/ArenaSkipList.git/datastream"
	"github.com/Hakuto4838/ArenaSkipList.git/skiplist"
	"github.com/Hakuto4838/ArenaSkipList.git/skiplist/analyTool"
	"github.com/Hakuto4838/ArenaSkipList.git/skiplist/arena"
	"github.com/Hakuto4838/ArenaSkipList.git/skiplist/freelist"
	"github.com/olekukonko/tablewriter"
)

func main() {
	// Input: either provide -file, or provide -out and generation params
	var file string
	var out string
	var n int
	var a float64
	var b float64
	var k int
	var seed int64

	var impls string
	var runs int
	var csvout string

	flag.StringVar(&file, "file", "", "existing bench streamfile (ALBENCH1 format)")
	flag.StringVar(&out, "out", "", "output path to write generated bench streamfile")
	flag.IntVar(&n, "n", 0, "number of values for Zipf generator")
	flag.Float64Var(&a, "a", 1.07, "Zipf parameter a")
	flag.Float64Var(&b, "b", 0.0, "Zipf parameter b")
	flag.IntVar(&k, "k", 0, "number of operations to generate")
	flag.Int64Var(&seed, "seed", time.Now().UnixNano(), "seed for generators/structures where applicable")

	flag.StringVar(&impls, "impl", "all", "implementations to run: all or comma list (arena,freelist)")
	flag.IntVar(&runs, "runs", 5, "how many times to repeat each benchmark")
	flag.StringVar(&csvout, "csvout", "", "optional path to dump each final structure as CSV")
	flag.Parse()

	var benchPath string
	if file != "" {
		benchPath = file
		fmt.Printf("bench_file: %s\n", file)
	} else {
		// validate generation inputs
		if out == "" {
			log.Fatalf("either -file or -out with generation params (-n,-a,-b,-k,-seed) must be provided")
		}
		if n <= 0 || k < 0 {
			log.Fatalf("invalid -n or -k: n=%d k=%d", n, k)
		}
		gen := datastream.NewZipfDataGenerator(n, a, b, seed)
		if err := datastream.WriteBenchFileFromZipf(gen, k, out); err != nil {
			log.Fatalf("generate bench file: %v", err)
		}
		fmt.Printf("generated bench_file: %s\n", out)
		benchPath = out
	}

	bf, err := datastream.ReadBenchFile(benchPath)
	if err != nil {
		log.Fatalf("read bench file %s: %v", benchPath, err)
	}

	toRun := parseImpls(impls)
	fmt.Printf("implementations to test: %s\n", strings.Join(toRun, ","))
	fmt.Printf("ops: %d\n", len(bf.Ops))
	fmt.Printf("entropy: %.6f\n", computeEntropy(bf.Dist))
	fmt.Println(strings.Repeat("=", 80))

	var csvWriter *csv.Writer
	if csvout != "" {
		f, err := os.Create(csvout)
		if err != nil {
			log.Fatalf("create csv output %s: %v", csvout, err)
		}
		defer f.Close()
		csvWriter = csv.NewWriter(f)
		defer csvWriter.Flush()
	}

	rows := make([][]string, 0, len(toRun))
	for _, impl := range toRun {
		fmt.Printf("benchmarking %s...\n", impl)
		stats := benchmarkImpl(bf, impl, runs, seed, csvWriter)
		thr := float64(len(bf.Ops)) / (stats.avgMs / 1000.0)
		steps := "N/A"
		if !math.IsNaN(stats.avgSteps) {
			steps = fmt.Sprintf("%.6f", stats.avgSteps)
		}
		rows = append(rows, []string{
			impl,
			fmt.Sprintf("%d", runs),
			fmt.Sprintf("%.3f", stats.avgMs),
			fmt.Sprintf("%.3f", stats.minMs),
			fmt.Sprintf("%.3f", stats.maxMs),
			fmt.Sprintf("%.2f", thr),
			steps,
			fmt.Sprintf("%d", stats.size),
			fmt.Sprintf("%d", stats.level),
		})
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Impl", "Runs", "Avg(ms)", "Min(ms)", "Max(ms)", "Ops/s", "AvgSteps", "Size", "Level"})
	table.SetAlignment(tablewriter.ALIGN_CENTER)
	table.SetAutoWrapText(false)
	table.AppendBulk(rows)
	table.Render()
}

type benchStats struct {
	avgMs    float64
	minMs    float64
	maxMs    float64
	avgSteps float64 // 取自第一輪的結構分析，無法分析時為 NaN
	size     int
	level    int
}

func benchmarkImpl(bf *datastream.BenchFile, impl string, runs int, seed int64, csvWriter *csv.Writer) benchStats {
	durations := make([]float64, 0, runs)
	stats := benchStats{avgSteps: math.NaN()}
	for i := 0; i < runs; i++ {
		sl := newImpl(impl, seed)
		elapsed := runOpsAndTime(sl, bf)
		durations = append(durations, float64(elapsed.Microseconds())/1000.0)
		if i == 0 {
			analy, ok := sl.(skiplist.Analyable)
			if !ok {
				continue
			}
			if !analyTool.CheckStruct(analy) {
				log.Fatalf("%s: structure check failed after replay", impl)
			}
			s, _ := analyTool.AnalyzeStep(analy, bf.Dist)
			stats.avgSteps = s
			stats.size, stats.level = analy.GetMaxStats()
			if csvWriter != nil {
				csvWriter.Write([]string{impl})
				analyTool.PrintSkipListToCSV(analy, stats.level, stats.size, csvWriter)
			}
		}
	}
	sort.Float64s(durations)
	sum := 0.0
	for _, v := range durations {
		sum += v
	}
	stats.avgMs = sum / float64(len(durations))
	stats.minMs = durations[0]
	stats.maxMs = durations[len(durations)-1]
	return stats
}

func newImpl(impl string, seed int64) skiplist.OrderedSet {
	switch impl {
	case "arena":
		return arena.NewWithSeed(uint32(seed))
	case "freelist":
		return freelist.NewWithSeed(uint32(seed))
	default:
		log.Fatalf("unknown -impl: %s", impl)
		return nil
	}
}

func runOpsAndTime(sl skiplist.OrderedSet, bf *datastream.BenchFile) time.Duration {
	start := time.Now()
	for _, op := range bf.Ops {
		switch op.Type {
		case datastream.OpSearch:
			sl.Search(op.Value)
		case datastream.OpInsert:
			sl.Insert(op.Value)
		case datastream.OpDelete:
			sl.Delete(op.Value)
		}
	}
	return time.Since(start)
}

func parseImpls(s string) []string {
	if s == "" || s == "all" {
		return []string{"arena", "freelist"}
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	seen := map[string]bool{}
	for _, p := range parts {
		t := strings.TrimSpace(strings.ToLower(p))
		if t == "" || seen[t] {
			continue
		}
		switch t {
		case "arena", "freelist":
			out = append(out, t)
			seen[t] = true
		}
	}
	if len(out) == 0 {
		return []string{"arena", "freelist"}
	}
	return out
}

func computeEntropy(m map[skiplist.V]float64) float64 {
	h := 0.0
	for _, p := range m {
		if p > 0 {
			h -= p * math.Log2(p)
		}
	}
	return h
}
