package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Generation struct {
	MaxDimension   int
	WeightRange    int
	MaxWeightRange int
	// MaxImagePixels bounds the area of a rendered PNG.
	MaxImagePixels int
	// StepDelay spaces out events on the websocket step stream.
	StepDelay time.Duration
}

func DefaultGeneration() *Generation {
	return &Generation{
		MaxDimension:   200,
		WeightRange:    10,
		MaxWeightRange: 100,
		MaxImagePixels: 4_000_000,
		StepDelay:      25 * time.Millisecond,
	}
}

func lookupPositiveInt(key string, fallback int) (int, error) {
	s, ok := os.LookupEnv(key)
	if !ok {
		return fallback, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("unable to convert %s to int: %w", key, err)
	}
	if v <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %d", key, v)
	}
	return v, nil
}

func NewGeneration() (*Generation, error) {
	cfg := DefaultGeneration()

	var err error
	if cfg.MaxDimension, err = lookupPositiveInt("MAZE_MAX_DIMENSION", cfg.MaxDimension); err != nil {
		return nil, err
	}
	if cfg.WeightRange, err = lookupPositiveInt("MAZE_WEIGHT_RANGE", cfg.WeightRange); err != nil {
		return nil, err
	}
	if cfg.MaxWeightRange, err = lookupPositiveInt("MAZE_MAX_WEIGHT_RANGE", cfg.MaxWeightRange); err != nil {
		return nil, err
	}
	if cfg.WeightRange > cfg.MaxWeightRange {
		return nil, fmt.Errorf("MAZE_WEIGHT_RANGE (%d) exceeds MAZE_MAX_WEIGHT_RANGE (%d)",
			cfg.WeightRange, cfg.MaxWeightRange)
	}
	if cfg.MaxImagePixels, err = lookupPositiveInt("MAZE_MAX_IMAGE_PIXELS", cfg.MaxImagePixels); err != nil {
		return nil, err
	}
	if s, ok := os.LookupEnv("MAZE_STEP_DELAY"); ok {
		d, err := time.ParseDuration(s)
		if err != nil {
			return nil, fmt.Errorf("unable to parse MAZE_STEP_DELAY: %w", err)
		}
		if d < 0 {
			return nil, fmt.Errorf("MAZE_STEP_DELAY must not be negative, got %s", d)
		}
		cfg.StepDelay = d
	}

	return cfg, nil
}
