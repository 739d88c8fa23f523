// pkg/config/config.go
package config

import (
	"fmt"
	"strings"
)

// Config holds the tunable knobs for the solver engines. It is
// configuration for an embeddable library, not a service: there are no
// ports, no TLS, no database DSNs.
type Config struct {
	Log            LogConfig            `koanf:"log"`
	NetworkSimplex NetworkSimplexConfig `koanf:"network_simplex"`
	CostScaling    CostScalingConfig    `koanf:"cost_scaling"`
	MaxFlow        MaxFlowConfig        `koanf:"max_flow"`
}

// LogConfig controls the injected *slog.Logger built by pkg/logger.
type LogConfig struct {
	Level      string `koanf:"level"`  // debug, info, warn, error
	Format     string `koanf:"format"` // json, text
	Output     string `koanf:"output"` // stdout, stderr, file
	FilePath   string `koanf:"file_path"`
	MaxSize    int  `koanf:"max_size"` // MB
	MaxBackups int  `koanf:"max_backups"`
	MaxAge     int  `koanf:"max_age"` // days
	Compress   bool `koanf:"compress"`
}

// NetworkSimplexConfig tunes the primal Network Simplex engine
// (internal/simplex).
type NetworkSimplexConfig struct {
	// MinBlockSize is the lower bound on the block-search candidate list
	// size, independent of the sqrt(m) heuristic.
	MinBlockSize int `koanf:"min_block_size"`
	// BlockSizeFactor scales sqrt(m) to produce the nominal block size.
	BlockSizeFactor float64 `koanf:"block_size_factor"`
	// DenseArcThreshold is loaded and must be positive, but it is not
	// passed to the engine, which shrinks the block size on graphs whose
	// arc/node ratio exceeds a fixed threshold of 10.
	DenseArcThreshold float64 `koanf:"dense_arc_threshold"`
	// WarmStart is loaded (default true), but nothing reads it: every
	// NetworkSimplexSolver.Solve builds a new engine from a fresh initial
	// basis, and no spanning tree is kept between solves.
	WarmStart bool `koanf:"warm_start"`
}

// CostScalingConfig tunes the cost-scaling push-relabel MCF engine
// (internal/costscaling).
type CostScalingConfig struct {
	// Alpha is the epsilon-scaling factor; each refine phase divides the
	// current epsilon by Alpha.
	Alpha int `koanf:"alpha"`
	// PivotCapMultiplier is loaded and must be positive, but it is not
	// passed to the engine: costscaling.NewSolver takes only Alpha, and no
	// relabel bound is derived from this value.
	PivotCapMultiplier int `koanf:"pivot_cap_multiplier"`
}

// MaxFlowConfig tunes the push-relabel max-flow engine (internal/maxflow).
type MaxFlowConfig struct {
	// GlobalRelabelFrequency is loaded and must be positive, but it is not
	// passed to the engine: maxflow.New takes no tuning values, and the
	// engine runs one global relabeling pass per source-saturation round.
	GlobalRelabelFrequency float64 `koanf:"global_relabel_frequency"`
}

// Validate checks the configuration for internally consistent values.
func (c *Config) Validate() error {
	var errs []string

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Log.Level)] {
		errs = append(errs, fmt.Sprintf("log.level must be one of: debug, info, warn, error, got %s", c.Log.Level))
	}

	if c.NetworkSimplex.MinBlockSize <= 0 {
		errs = append(errs, fmt.Sprintf("network_simplex.min_block_size must be positive, got %d", c.NetworkSimplex.MinBlockSize))
	}
	if c.NetworkSimplex.BlockSizeFactor <= 0 {
		errs = append(errs, fmt.Sprintf("network_simplex.block_size_factor must be positive, got %f", c.NetworkSimplex.BlockSizeFactor))
	}
	if c.NetworkSimplex.DenseArcThreshold <= 0 {
		errs = append(errs, fmt.Sprintf("network_simplex.dense_arc_threshold must be positive, got %f", c.NetworkSimplex.DenseArcThreshold))
	}

	if c.CostScaling.Alpha < 2 {
		errs = append(errs, fmt.Sprintf("cost_scaling.alpha must be at least 2, got %d", c.CostScaling.Alpha))
	}
	if c.CostScaling.PivotCapMultiplier <= 0 {
		errs = append(errs, fmt.Sprintf("cost_scaling.pivot_cap_multiplier must be positive, got %d", c.CostScaling.PivotCapMultiplier))
	}

	if c.MaxFlow.GlobalRelabelFrequency <= 0 {
		errs = append(errs, fmt.Sprintf("max_flow.global_relabel_frequency must be positive, got %f", c.MaxFlow.GlobalRelabelFrequency))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return nil
}
