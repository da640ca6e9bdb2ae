package main

import (
	"fmt"
	"os"
	"strings"

	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	defaultDealerProverAddr   = "127.0.0.1:7002"
	defaultDealerVerifierAddr = "127.0.0.1:7003"
	defaultLogLevel           = "info"
	defaultLogOutput          = "stdout"
)

// LogConfig holds logging configuration, nested under "log" the same way
// cmd/davinci-sequencer/config.go does.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Output string `mapstructure:"output"`
}

// Config holds vole-dealer's configuration, merged from flags,
// environment variables, and the defaults above.
type Config struct {
	DealerProverAddr   string    `mapstructure:"dealerProverAddr"`
	DealerVerifierAddr string    `mapstructure:"dealerVerifierAddr"`
	Log                LogConfig `mapstructure:"log"`
}

func loadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("dealerProverAddr", defaultDealerProverAddr)
	v.SetDefault("dealerVerifierAddr", defaultDealerVerifierAddr)
	v.SetDefault("log.level", defaultLogLevel)
	v.SetDefault("log.output", defaultLogOutput)

	flag.String("dealerProverAddr", defaultDealerProverAddr, "address to listen on for the prover")
	flag.String("dealerVerifierAddr", defaultDealerVerifierAddr, "address to listen on for the verifier")
	flag.StringP("log.level", "l", defaultLogLevel, "log level (debug, info, warn, error)")
	flag.StringP("log.output", "o", defaultLogOutput, "log output (stdout, stderr, or filepath)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: vole-dealer [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Serves exactly one extend-VOLE request to a prover and a verifier, then exits.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment variables are also available, e.g. VOLEDEALER_DEALERPROVERADDR.\n")
	}

	flag.CommandLine.SortFlags = false
	flag.Parse()

	v.SetEnvPrefix("VOLEDEALER")
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
