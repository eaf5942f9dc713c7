package rebalance

import (
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultMaxMovesPerServer matches the sweet spot between rebalancing
	// speed and the extra load replica copies put on a server.
	DefaultMaxMovesPerServer = 5
	// DefaultMaxStalenessInterval is how long a run tolerates zero progress
	// before treating the cluster as interfered with.
	DefaultMaxStalenessInterval = 5 * time.Minute
)

// Config controls a rebalancing run.
type Config struct {
	// MasterAddresses lists the cluster master endpoints ("host:port").
	MasterAddresses []string
	// TableFilters restricts rebalancing to tables whose name matches one of
	// the entries. Empty means the whole cluster.
	TableFilters []string
	// MaxMovesPerServer caps the number of in-flight replica moves any
	// single tablet server takes part in, counting incoming and outgoing
	// moves alike.
	MaxMovesPerServer int
	// MaxStalenessInterval bounds how long the run keeps going without
	// observable progress before giving up.
	MaxStalenessInterval time.Duration
	// MaxRunTime bounds the wall-clock duration of the whole run. Zero means
	// unbounded.
	MaxRunTime time.Duration
	// MoveRF1Replicas includes tables with a replication factor of one.
	// Such tables are skipped by default since moving their only replica
	// means copying data without any redundancy.
	MoveRF1Replicas bool
	// OutputReplicaDistributionDetails adds per-server and per-table
	// breakdowns to the distribution statistics.
	OutputReplicaDistributionDetails bool

	// Rand seeds all randomized tie-breaking when set, making runs
	// reproducible in tests.
	Rand *rand.Rand
	// Logger overrides the default run logger when set.
	Logger *log.Logger
}

// DefaultConfig returns a Config with the default knob values and no
// endpoints.
func DefaultConfig() Config {
	return Config{
		MaxMovesPerServer:    DefaultMaxMovesPerServer,
		MaxStalenessInterval: DefaultMaxStalenessInterval,
	}
}

// Validate reports whether the configuration is usable for a run.
func (c *Config) Validate() error {
	if len(c.MasterAddresses) == 0 {
		return errors.New("no master addresses configured")
	}
	for _, addr := range c.MasterAddresses {
		if addr == "" {
			return errors.New("empty master address configured")
		}
	}
	if c.MaxMovesPerServer < 1 {
		return errors.Newf("max moves per server must be at least 1, got %d", c.MaxMovesPerServer)
	}
	if c.MaxStalenessInterval <= 0 {
		return errors.Newf("max staleness interval must be positive, got %s", c.MaxStalenessInterval)
	}
	if c.MaxRunTime < 0 {
		return errors.Newf("max run time must not be negative, got %s", c.MaxRunTime)
	}
	return nil
}

// fileConfig is the YAML shape of Config. Durations are strings in Go
// notation, e.g. "5m" or "1h30m".
type fileConfig struct {
	MasterAddresses                  []string `yaml:"masterAddresses"`
	TableFilters                     []string `yaml:"tableFilters"`
	MaxMovesPerServer                int      `yaml:"maxMovesPerServer"`
	MaxStalenessInterval             string   `yaml:"maxStalenessInterval"`
	MaxRunTime                       string   `yaml:"maxRunTime"`
	MoveRF1Replicas                  bool     `yaml:"moveRF1Replicas"`
	OutputReplicaDistributionDetails bool     `yaml:"outputReplicaDistributionDetails"`
}

// LoadConfig reads a YAML config file. Omitted knobs keep their defaults.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "failed to read config file %s", path)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	cfg := DefaultConfig()
	cfg.MasterAddresses = fc.MasterAddresses
	cfg.TableFilters = fc.TableFilters
	if fc.MaxMovesPerServer != 0 {
		cfg.MaxMovesPerServer = fc.MaxMovesPerServer
	}
	if fc.MaxStalenessInterval != "" {
		d, err := time.ParseDuration(fc.MaxStalenessInterval)
		if err != nil {
			return Config{}, errors.Wrapf(err, "invalid maxStalenessInterval in %s", path)
		}
		cfg.MaxStalenessInterval = d
	}
	if fc.MaxRunTime != "" {
		d, err := time.ParseDuration(fc.MaxRunTime)
		if err != nil {
			return Config{}, errors.Wrapf(err, "invalid maxRunTime in %s", path)
		}
		cfg.MaxRunTime = d
	}
	cfg.MoveRF1Replicas = fc.MoveRF1Replicas
	cfg.OutputReplicaDistributionDetails = fc.OutputReplicaDistributionDetails
	return cfg, nil
}
