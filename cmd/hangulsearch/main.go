/*
Command hangulsearch runs the Hangul fuzzy-search index as either a
MessagePack IPC server or an interactive CLI, for integration testing and
local debugging.

# Usage

Start the server with default settings, reading a seed file of search
keys (one per line):

	hangulsearch -seed words.txt

Run in CLI mode for interactive querying:

	hangulsearch -seed words.txt -c

# Configuration

Runtime defaults (index strategy, cache capacity, ranking options) are
read from a TOML config file, resolved with the usual priority chain:
a -config flag path, then the platform config directory, then builtin
defaults. The file is created with defaults on first run.

# IPC protocol

The server communicates via MessagePack over stdin/stdout, one message
per line; see pkg/ipc for the request/response shapes.
*/
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"

	"github.com/yeojin-dev/hangulsearch/internal/choseong"
	"github.com/yeojin-dev/hangulsearch/pkg/config"
	"github.com/yeojin-dev/hangulsearch/pkg/ipc"
	"github.com/yeojin-dev/hangulsearch/pkg/ranking"
	"github.com/yeojin-dev/hangulsearch/pkg/search"
	"github.com/yeojin-dev/hangulsearch/pkg/telemetry"
)

const (
	Version = "0.1.0"
	AppName = "hangulsearch"
)

func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

func main() {
	sigHandler()

	configPath := flag.String("config", "", "Path to config.toml (default: platform config dir)")
	seedPath := flag.String("seed", "", "Path to a newline-delimited seed file of search keys")
	debugMode := flag.Bool("d", false, "Toggle debug mode")
	cliMode := flag.Bool("c", false, "Run CLI -- interactive querying instead of the IPC server")
	limit := flag.Int("limit", 10, "Number of similar matches to return in CLI mode")
	flag.Parse()

	if *debugMode {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	cfg, resolvedPath, err := config.LoadConfigWithPriority(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	log.Debugf("Using config at: %s", resolvedPath)

	if *seedPath == "" {
		log.Fatal("Missing -seed: a newline-delimited file of search keys is required")
	}
	keys, err := loadSeedFile(*seedPath)
	if err != nil {
		log.Fatalf("Failed to load seed file %s: %v", *seedPath, err)
	}

	policy := policyFromConfig(cfg)
	idx := search.New(keys, func(s string) string { return s }, policy)
	rec := telemetry.New()
	idx.SetTelemetry(rec)

	log.Infof("%s %s: loaded %d keys", AppName, Version, idx.Size())

	if *cliMode {
		runCLI(idx, *limit)
		return
	}

	srv := ipc.New(idx, rec, os.Stdin, os.Stdout)
	log.Debug("spawning IPC server")
	if err := srv.Serve(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func loadSeedFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var keys []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		keys = append(keys, line)
	}
	return keys, scanner.Err()
}

func policyFromConfig(cfg *config.Config) search.SearchPolicy {
	policy := search.SearchPolicy{
		ChoseongOptions: choseong.Options{
			PreserveNonHangul: cfg.Search.PreserveNonHangul,
			WhitespacePolicy:  whitespacePolicyFromString(cfg.Search.WhitespacePolicy),
		},
		IndexStrategy:    indexStrategyFromString(cfg.Search.IndexStrategy),
		NgramSize:        cfg.Search.NgramSize,
		MaxQueryLength:   cfg.Search.MaxQueryLength,
		MaxCandidateScan: cfg.Search.MaxCandidateScan,
	}
	if cfg.Cache.Enabled {
		policy.Cache = search.LruCache
		policy.CacheCapacity = cfg.Cache.Capacity
	}
	return policy
}

func indexStrategyFromString(s string) search.IndexStrategyKind {
	switch s {
	case "lazycache":
		return search.LazyCache
	case "ngram":
		return search.Ngram
	default:
		return search.Precompute
	}
}

func whitespacePolicyFromString(s string) choseong.WhitespacePolicy {
	switch s {
	case "keep":
		return choseong.WhitespaceKeep
	case "remove":
		return choseong.WhitespaceRemove
	default:
		return choseong.WhitespaceNormalize
	}
}

func runCLI(idx *search.Index[string], limit int) {
	fmt.Println("hangulsearch CLI -- type a query, empty line to exit")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			return
		}
		query := scanner.Text()
		if query == "" {
			return
		}

		results := idx.SearchSimilar(query, ranking.Options{Limit: limit})
		if len(results) == 0 {
			fmt.Println("  (no matches)")
			continue
		}
		for _, r := range results {
			fmt.Printf("  %-20s %.3f\n", r.Item, r.Breakdown.Total)
		}
	}
}
