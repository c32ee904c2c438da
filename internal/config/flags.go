package config

import "flag"

var (
	flagConfig     = flag.String("config", "", "Path to config file")
	flagDebug      = flag.Bool("debug", false, "Enable debug logging")
	flagMethod     = flag.String("method", "", "Voxel method (overlaps, dummy)")
	flagResolution = flag.Int("resolution", 0, "Number of voxels along each axis")
	flagMax        = flag.Float64("max", 0, "Upper bound of the sampled cube on all three axes")
	flagWorkers    = flag.Int("workers", -1, "Concurrent z-slabs (0 = all CPUs)")
	flagLegacy     = flag.Bool("legacy-offsets", false, "Offset y/z samples by half an x bin (earlier releases)")
	flagOutput     = flag.String("out", "", "Output directory")
	flagLogFile    = flag.String("log-file", "", "Also write logs to this file")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// Args returns the non-flag arguments (the command and its arguments).
func Args() []string {
	return flag.Args()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagMethod != "" {
		cfg.Voxels.Method = *flagMethod
	}
	if *flagResolution > 0 {
		cfg.Voxels.Resolution = *flagResolution
	}
	if *flagMax > 0 {
		cfg.Voxels.XMax = *flagMax
		cfg.Voxels.YMax = *flagMax
		cfg.Voxels.ZMax = *flagMax
	}
	if *flagWorkers >= 0 {
		cfg.Voxels.Workers = *flagWorkers
	}
	if *flagLegacy {
		cfg.Voxels.LegacyOffsets = true
	}
	if *flagOutput != "" {
		cfg.Output.Dir = *flagOutput
	}
	if *flagLogFile != "" {
		cfg.Logging.LogFile = *flagLogFile
	}
}
