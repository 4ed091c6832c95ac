package main

import (
	"flag"
	"log"
	"os"
	"runtime/pprof"

	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/engine"
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/proto"
	"github.com/TianLangHin/ultimate-tic-tac-toe-website/internal/storage"
)

var (
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
	maxDepth   = flag.Int("max-depth", engine.DefaultMaxDepth, "search depth ceiling")
	cacheDir   = flag.String("cache-dir", "", "enable the analysis cache in this directory")
)

func main() {
	flag.Parse()

	// Start CPU profiling if requested (via flag or environment variable)
	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	opts := []engine.Option{engine.WithMaxDepth(*maxDepth)}
	if *cacheDir != "" {
		store, err := storage.Open(*cacheDir)
		if err != nil {
			log.Printf("Warning: cache unavailable: %v", err)
		} else {
			defer store.Close()
			opts = append(opts, engine.WithCache(store))
		}
	}

	handler := proto.New(engine.New(opts...), os.Stdin, os.Stdout)
	handler.Run()
}
