package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/pagemap"
)

func main() {
	count := flag.Int("count", 1000, "Number of pages to generate")
	nested := flag.Int("nested", 0, "Spread pages over this many subdirectories (enables recursive discovery)")
	keep := flag.Bool("keep", false, "Keep the benchmark project after running")
	flag.Parse()

	benchDir, err := os.MkdirTemp("", "pagemap_bench_")
	if err != nil {
		panic(err)
	}
	defer func() {
		if !*keep {
			os.RemoveAll(benchDir)
		} else {
			fmt.Printf("Keeping bench dir: %s\n", benchDir)
		}
	}()

	fmt.Printf("Generating %d pages in %s...\n", *count, benchDir)
	startGen := time.Now()

	pagesDir := filepath.Join(benchDir, "src", "pages")
	for i := 0; i < *count; i++ {
		dir := pagesDir
		if *nested > 0 {
			dir = filepath.Join(pagesDir, fmt.Sprintf("group_%d", i%*nested))
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			panic(err)
		}
		content := fmt.Sprintf("import Vue from 'vue'\nnew Vue({ el: '#app', data: { page: %d } })\n", i)
		if err := os.WriteFile(filepath.Join(dir, fmt.Sprintf("page_%d.js", i)), []byte(content), 0644); err != nil {
			panic(err)
		}
	}
	if err := os.WriteFile(filepath.Join(benchDir, "index.html"), []byte("<div id=\"app\"></div>\n"), 0644); err != nil {
		panic(err)
	}
	fmt.Printf("Generation took: %v\n", time.Since(startGen))

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelWarn}))
	project, err := pagemap.Open(benchDir,
		pagemap.WithLogger(logger),
		pagemap.WithRecursive(*nested > 0),
	)
	if err != nil {
		panic(err)
	}

	ctx := context.Background()

	fmt.Println("Running Pages (discovery only)...")
	startScan := time.Now()
	pages, err := project.Pages(ctx)
	if err != nil {
		panic(err)
	}
	scan := time.Since(startScan)
	fmt.Printf("Discovery: %v (Pages: %d)\n", scan, len(pages))

	results := make(map[pagemap.Mode]time.Duration, 2)
	for _, mode := range []pagemap.Mode{pagemap.Development, pagemap.Production} {
		fmt.Printf("Running Build (%s)...\n", mode)
		start := time.Now()
		cfg, err := project.Build(ctx, mode)
		if err != nil {
			panic(err)
		}
		results[mode] = time.Since(start)
		fmt.Printf("Build %s: %v (Entries: %d, Documents: %d)\n", mode, results[mode], len(cfg.Entry), len(cfg.Documents))
	}

	fmt.Printf("--------------------------------------------------\n")
	fmt.Printf("Benchmark Result (%d pages):\n", *count)
	fmt.Printf("  Discovery:   %v\n", scan)
	fmt.Printf("  Development: %v\n", results[pagemap.Development])
	fmt.Printf("  Production:  %v\n", results[pagemap.Production])
	fmt.Printf("--------------------------------------------------\n")
}
