package main

import (
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultProgram            = "muleq"
	defaultSteps              = 64
	defaultProverVerifierAddr = "127.0.0.1:7001"
	defaultDealerProverAddr   = "127.0.0.1:7002"
	defaultDealerVerifierAddr = "127.0.0.1:7003"
	defaultLogLevel           = "info"
	defaultLogOutput          = "stdout"
)

// LogConfig holds logging configuration, split out so viper can nest it
// under the "log" key the same way cmd/davinci-sequencer/config.go does.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// Config holds the demo binary's full configuration, merged from flags,
// environment variables, and the defaults above.
type Config struct {
	Party   string `mapstructure:"party"`
	Program string `mapstructure:"program"`
	Steps   int    `mapstructure:"steps"`
	Input   []int  `mapstructure:"input"`

	ProverVerifierAddr string `mapstructure:"proverVerifierAddr"`
	DealerProverAddr   string `mapstructure:"dealerProverAddr"`
	DealerVerifierAddr string `mapstructure:"dealerVerifierAddr"`

	Log LogConfig `mapstructure:"log"`
}

// loadConfig loads configuration from flags, environment variables, and
// defaults, following cmd/davinci-sequencer/config.go's layering.
func loadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("program", defaultProgram)
	v.SetDefault("steps", defaultSteps)
	v.SetDefault("proverVerifierAddr", defaultProverVerifierAddr)
	v.SetDefault("dealerProverAddr", defaultDealerProverAddr)
	v.SetDefault("dealerVerifierAddr", defaultDealerVerifierAddr)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.output", defaultLogOutput)

	flag.String("party", "", "role to run: prover, verifier, or vole (required)")
	flag.String("program", defaultProgram, "preset MiniRAM program to prove/verify")
	flag.Int("steps", defaultSteps, "step bound T")
	flag.IntSlice("input", nil, "prover witness input words, comma-separated (defaults to the preset's own sample input)")
	flag.String("proverVerifierAddr", defaultProverVerifierAddr, "prover<->verifier address (verifier listens, prover dials)")
	flag.String("dealerProverAddr", defaultDealerProverAddr, "dealer<->prover address (dealer listens, prover dials)")
	flag.String("dealerVerifierAddr", defaultDealerVerifierAddr, "dealer<->verifier address (dealer listens, verifier dials)")
	flag.StringP("log.level", "l", defaultLogLevel, "log level (debug, info, warn, error)")
	flag.StringP("log.output", "o", defaultLogOutput, "log output (stdout, stderr, or filepath)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: miniram-zk --party {prover|verifier|vole} [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables are also available, e.g. MINIRAMZK_PARTY, MINIRAMZK_PROGRAM.\n")
	}

	flag.CommandLine.SortFlags = false
	flag.Parse()

	v.SetEnvPrefix("MINIRAMZK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flag.CommandLine); err != nil {
		return nil, fmt.Errorf("error binding flags: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return cfg, nil
}

func validateConfig(cfg *Config) error {
	switch cfg.Party {
	case "prover", "verifier", "vole":
	default:
		return fmt.Errorf("invalid --party %q: must be prover, verifier, or vole", cfg.Party)
	}
	if cfg.Steps <= 0 {
		return fmt.Errorf("--steps must be positive")
	}
	return nil
}
