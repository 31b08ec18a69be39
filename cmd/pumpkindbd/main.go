// Command pumpkindbd runs a standalone PumpkinDB engine, loading its
// configuration from a YAML file and evaluating programs read from stdin.
// Adapted from quasar's example command, which opened a ledger/matrix pair
// directly; here the whole stack (storage, scheduler, reaper, bus) is
// assembled by pumpkindb.Open from a parsed pumpkindb.Config.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pumpkindb/pumpkindb"

	// Blank-imported so every built-in instruction registers itself via
	// init(); pumpkindb itself must never import isa (it would cycle back
	// through isa's dependency on pumpkindb).
	_ "github.com/pumpkindb/pumpkindb/isa"
)

func main() {
	configPath := flag.String("config", "pumpkindb.yml", "path to the engine configuration file")
	flag.Parse()

	cfg, err := pumpkindb.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("pumpkindbd: failed to load config: %v", err)
	}

	engineConfig, err := cfg.EngineConfig()
	if err != nil {
		log.Fatalf("pumpkindbd: invalid config: %v", err)
	}

	engine, err := pumpkindb.Open(engineConfig)
	if err != nil {
		log.Fatalf("pumpkindbd: failed to open engine: %v", err)
	}
	defer engine.Close()

	program, err := io.ReadAll(os.Stdin)
	if err != nil {
		log.Fatalf("pumpkindbd: failed to read program from stdin: %v", err)
	}

	values, err := engine.Submit(context.Background(), program)
	if err != nil {
		log.Fatalf("pumpkindbd: program failed: %v", err)
	}

	for _, v := range values {
		fmt.Printf("%x\n", []byte(v))
	}
}
