// Package config is for experiment wide settings that are unmarshalled
// from Viper (see: /cmd)
package config

import (
	"log"
	"os"

	"github.com/spf13/viper"

	"github.com/megjohnson1999/assembly-clustering-validation/internal/asmstat"
	"github.com/megjohnson1999/assembly-clustering-validation/internal/script"
)

// SettingsFile is the default settings file, read when present. Another
// file can be passed with the root command's --settings flag.
const SettingsFile = "settings.yaml"

// StatsConfig are the knobs of the assembly statistics engine
type StatsConfig struct {
	// count contigs at least this long, one count per threshold
	SizeThresholds []int `mapstructure:"size-thresholds"`

	// the Nx percentages to compute
	NxPercentages []float64 `mapstructure:"nx-percentages"`

	// sum the lengths of this many of the longest contigs
	LongestN int `mapstructure:"longest-n"`
}

// MegahitConfig is the fixed megahit flag template of the protocol
type MegahitConfig struct {
	MinContigLen int `mapstructure:"min-contig-len"`
	KMin         int `mapstructure:"k-min"`
	KMax         int `mapstructure:"k-max"`
	KStep        int `mapstructure:"k-step"`
	MinCount     int `mapstructure:"min-count"`
	Threads      int `mapstructure:"threads"`
}

// FlyeConfig is the meta-assembly stage template
type FlyeConfig struct {
	Threads int `mapstructure:"threads"`
}

// Config is the root-level settings struct and is a mix of settings
// available in settings.yaml and those available from the command line
type Config struct {
	// statistics engine settings
	Stats StatsConfig `mapstructure:"stats"`

	// assembler flag templates
	Megahit MegahitConfig `mapstructure:"megahit"`
	Flye    FlyeConfig    `mapstructure:"flye"`

	// the shuffle seeds of the random-grouping replicates
	Seeds []int64 `mapstructure:"seeds"`
}

// New returns a new Config struct populated by Viper settings (either
// from the local settings.yaml) and/or command line arguments
func New() *Config {
	setDefaults()

	settings := viper.GetString("settings")
	if settings == "" {
		settings = SettingsFile
	}
	viper.SetConfigFile(settings)
	if err := viper.ReadInConfig(); err != nil {
		// the default settings file is optional; an explicit one is not
		if settings != SettingsFile || !os.IsNotExist(err) {
			log.Fatalf("failed to read settings file %s: %v", settings, err)
		}
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		log.Fatalf("unable to decode settings into struct: %v", err)
	}
	return c
}

// the experiment protocol's defaults
func setDefaults() {
	viper.SetDefault("stats.size-thresholds", []int{500, 1000, 5000, 10000, 50000, 100000})
	viper.SetDefault("stats.nx-percentages", []float64{50, 75, 90})
	viper.SetDefault("stats.longest-n", 10)

	viper.SetDefault("megahit.min-contig-len", 500)
	viper.SetDefault("megahit.k-min", 45)
	viper.SetDefault("megahit.k-max", 225)
	viper.SetDefault("megahit.k-step", 26)
	viper.SetDefault("megahit.min-count", 2)
	viper.SetDefault("megahit.threads", 8)

	viper.SetDefault("flye.threads", 16)

	viper.SetDefault("seeds", []int64{42, 43, 44, 45, 46})
}

// StatsOptions bridges the settings to the statistics engine.
func (c *Config) StatsOptions() asmstat.Options {
	return asmstat.Options{
		SizeThresholds: c.Stats.SizeThresholds,
		NxPercentages:  c.Stats.NxPercentages,
		LongestN:       c.Stats.LongestN,
	}
}

// MegahitTemplate bridges the settings to the command renderer.
func (c *Config) MegahitTemplate() script.Megahit {
	return script.Megahit{
		MinContigLen: c.Megahit.MinContigLen,
		KMin:         c.Megahit.KMin,
		KMax:         c.Megahit.KMax,
		KStep:        c.Megahit.KStep,
		MinCount:     c.Megahit.MinCount,
		Threads:      c.Megahit.Threads,
	}
}

// FlyeTemplate bridges the settings to the command renderer.
func (c *Config) FlyeTemplate() script.Flye {
	return script.Flye{Threads: c.Flye.Threads}
}
