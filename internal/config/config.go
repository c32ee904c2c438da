// Package config handles crystalz configuration loading and management.
package config

import (
	"fmt"

	"github.com/Faultbox/crystalz/pkg/voxel"
)

// Config holds all settings.
type Config struct {
	Voxels  VoxelConfig   `yaml:"voxels"`
	Data    DataConfig    `yaml:"data"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// VoxelConfig holds sampling settings.
type VoxelConfig struct {
	Method     string  `yaml:"method"`
	Resolution int     `yaml:"resolution"`
	XMax       float64 `yaml:"x_max"`
	YMax       float64 `yaml:"y_max"`
	ZMax       float64 `yaml:"z_max"`
	Workers    int     `yaml:"workers"` // 0 = GOMAXPROCS
	// LegacyOffsets offsets y and z samples by half an x bin, matching
	// grids produced by earlier releases.
	LegacyOffsets bool `yaml:"legacy_offsets"`
}

// DataConfig holds input locations.
type DataConfig struct {
	XYZDir string `yaml:"xyz_dir"` // Directory scanned for *.xyz files
}

// OutputConfig holds output settings.
type OutputConfig struct {
	Dir  string `yaml:"dir"`
	PNG  bool   `yaml:"png"`  // Write slice previews next to volumes
	HTML bool   `yaml:"html"` // Write a value histogram report
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Voxels: VoxelConfig{
			Method:     voxel.OverlapsMethod,
			Resolution: 32,
			XMax:       10,
			YMax:       10,
			ZMax:       10,
		},
		Data: DataConfig{
			XYZDir: ".",
		},
		Output: OutputConfig{
			Dir: "out",
			PNG: true,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// Spec returns the sampling spec described by the voxel settings.
func (c *Config) Spec() voxel.Spec {
	return voxel.Spec{
		Resolution:    c.Voxels.Resolution,
		XMax:          c.Voxels.XMax,
		YMax:          c.Voxels.YMax,
		ZMax:          c.Voxels.ZMax,
		LegacyOffsets: c.Voxels.LegacyOffsets,
	}
}

// Method returns the configured voxel method, with the worker count applied
// where the method supports it.
func (c *Config) Method() (voxel.Method, error) {
	m, err := voxel.Lookup(c.Voxels.Method)
	if err != nil {
		return nil, err
	}
	if o, ok := m.(voxel.Overlaps); ok {
		o.Workers = c.Voxels.Workers
		m = o
	}
	return m, nil
}

// Validate checks the settings before any work starts.
func (c *Config) Validate() error {
	if _, err := c.Method(); err != nil {
		return err
	}
	if err := c.Spec().Validate(); err != nil {
		return err
	}
	if c.Voxels.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Voxels.Workers)
	}
	return nil
}
