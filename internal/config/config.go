package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Listen    string          `yaml:"listen"`
	Governor  GovernorConfig  `yaml:"governor"`
	LidSwitch LidSwitchConfig `yaml:"lid_switch"`
}

type GovernorConfig struct {
	InteractiveDir string `yaml:"interactive_dir"`
	CPU0Dir        string `yaml:"cpu0_dir"`

	ScreenOffMaxFreq string `yaml:"screen_off_max_freq"`
	BootMaxFreq      string `yaml:"boot_max_freq"`

	TimerRate         string `yaml:"timer_rate"`
	MinSampleTime     string `yaml:"min_sample_time"`
	HispeedFreq       string `yaml:"hispeed_freq"`
	TargetLoads       string `yaml:"target_loads"`
	GoHispeedLoad     string `yaml:"go_hispeed_load"`
	AboveHispeedDelay string `yaml:"above_hispeed_delay"`
}

type LidSwitchConfig struct {
	Enable bool `yaml:"enable"`
	// Line is the GPIO line name (e.g. "LID" or "GPIO17").
	Line      string        `yaml:"line"`
	ActiveLow bool          `yaml:"active_low"`
	Debounce  time.Duration `yaml:"debounce"`
}

func Load(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return Config{}, err
	}

	if cfg.Listen == "" {
		cfg.Listen = "127.0.0.1:9573"
	}

	// Frequency and interval values must be plain decimal strings; the
	// kernel rejects anything else and we would only find out from the
	// logs, long after startup.
	for _, f := range []struct{ name, value string }{
		{"governor.screen_off_max_freq", cfg.Governor.ScreenOffMaxFreq},
		{"governor.boot_max_freq", cfg.Governor.BootMaxFreq},
		{"governor.hispeed_freq", cfg.Governor.HispeedFreq},
		{"governor.timer_rate", cfg.Governor.TimerRate},
		{"governor.min_sample_time", cfg.Governor.MinSampleTime},
		{"governor.go_hispeed_load", cfg.Governor.GoHispeedLoad},
		{"governor.above_hispeed_delay", cfg.Governor.AboveHispeedDelay},
	} {
		if f.value == "" {
			continue
		}
		if _, err := strconv.ParseUint(f.value, 10, 64); err != nil {
			return Config{}, fmt.Errorf("%s must be a decimal string, got %q", f.name, f.value)
		}
	}

	if cfg.LidSwitch.Enable {
		if cfg.LidSwitch.Line == "" {
			return Config{}, fmt.Errorf("lid_switch.line is required when lid_switch.enable is true")
		}
		if cfg.LidSwitch.Debounce < 0 {
			return Config{}, fmt.Errorf("lid_switch.debounce must be >= 0")
		}
		if cfg.LidSwitch.Debounce == 0 {
			cfg.LidSwitch.Debounce = 20 * time.Millisecond
		}
	}

	return cfg, nil
}
