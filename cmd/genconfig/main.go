// Command genconfig writes the effective configuration to a YAML file,
// as a starting point for custom presets.
package main

import (
	"flag"
	"log"

	"github.com/pthm-cable/spill/config"
)

func main() {
	configPath := flag.String("config", "", "Base config to merge over defaults (empty = defaults only)")
	out := flag.String("out", "config.yaml", "Output path")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.WriteYAML(*out); err != nil {
		log.Fatalf("failed to write config: %v", err)
	}
	log.Printf("wrote %s", *out)
}
