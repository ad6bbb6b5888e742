package stockwatch

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ConfigEnv is the environment variable naming an alternate config file.
const ConfigEnv = "STOCKWATCH_CONFIG"

// configFile is the default user-level config file name, under $HOME.
const configFile = ".stockwatch.yaml"

// Config is the user configuration: the portfolio and the display currency.
type Config struct {
	Holdings map[string]int64 `yaml:"holdings"`
	Currency string           `yaml:"currency"`
}

// DefaultConfig returns the built-in portfolio used when no config file is
// available.
func DefaultConfig() Config {
	return Config{
		Holdings: map[string]int64{
			"SVOL-B.ST":  8367,
			"INVE-B.ST":  1387,
			"LIFCO-B.ST": 5,
			"MC.PA":      45,
			"INDU-C.ST":  21,
			"IUSA.DE":    720,
		},
		Currency: "EUR",
	}
}

// LoadConfig loads the configuration, trying in order: the explicit path,
// the STOCKWATCH_CONFIG environment variable, and the default user-level
// file. A missing or malformed file is never fatal: the built-in defaults
// are returned along with a warning for the user.
func LoadConfig(explicit string) (Config, string) {
	path := explicit
	if path == "" {
		path = os.Getenv(ConfigEnv)
	}
	requested := path != ""
	if path == "" {
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, configFile)
		}
	}
	if path == "" {
		return DefaultConfig(), ""
	}

	cfg, err := readConfig(path)
	if err != nil {
		// The absence of the implicit user-level file is the normal case
		// and stays quiet.
		if !requested && os.IsNotExist(err) {
			return DefaultConfig(), ""
		}
		return DefaultConfig(), fmt.Sprintf("cannot read config %s, using defaults: %v", path, err)
	}
	return cfg, ""
}

func readConfig(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		return Config{}, fmt.Errorf("malformed yaml: %w", err)
	}
	if len(cfg.Holdings) == 0 {
		return Config{}, fmt.Errorf("no holdings defined")
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultConfig().Currency
	}
	cfg.Currency = strings.ToUpper(cfg.Currency)
	return cfg, nil
}

// Portfolio returns the configured holdings as a slice, sorted by symbol for
// deterministic iteration. Non-positive quantities are dropped.
func (c Config) Portfolio() []Holding {
	holdings := make([]Holding, 0, len(c.Holdings))
	for symbol, qty := range c.Holdings {
		if qty <= 0 {
			continue
		}
		holdings = append(holdings, Holding{Symbol: symbol, Quantity: qty})
	}
	sort.Slice(holdings, func(i, j int) bool { return holdings[i].Symbol < holdings[j].Symbol })
	return holdings
}
