package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mgomes/innerscope/innerscope"
	"github.com/spf13/viper"
)

const (
	appName        = "innerscope"
	configFileName = "innerscope"
	configFileExt  = "toml"
	envPrefix      = "INNERSCOPE"
)

// settings is the resolved CLI configuration. Flags win over INNERSCOPE_*
// env vars, which win over innerscope.toml, which wins over the defaults.
type settings struct {
	Strategy       string `mapstructure:"strategy"`
	UseClosures    bool   `mapstructure:"use_closures"`
	UseGlobals     bool   `mapstructure:"use_globals"`
	StepQuota      int    `mapstructure:"step_quota"`
	RecursionLimit int    `mapstructure:"recursion_limit"`
	Verbose        bool   `mapstructure:"verbose"`
}

func defaultSettings() settings {
	return settings{
		Strategy:       innerscope.StrategyAuto.String(),
		UseClosures:    true,
		UseGlobals:     true,
		StepQuota:      50000,
		RecursionLimit: 64,
	}
}

// configDir returns $XDG_CONFIG_HOME/innerscope (or the platform equivalent).
func configDir() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return filepath.Join(dir, appName), nil
}

func newViper() *viper.Viper {
	v := viper.New()
	defaults := defaultSettings()
	v.SetDefault("strategy", defaults.Strategy)
	v.SetDefault("use_closures", defaults.UseClosures)
	v.SetDefault("use_globals", defaults.UseGlobals)
	v.SetDefault("step_quota", defaults.StepQuota)
	v.SetDefault("recursion_limit", defaults.RecursionLimit)
	v.SetDefault("verbose", defaults.Verbose)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// loadSettings reads the config file into v and decodes the merged view.
// A missing config file is not an error unless it was named explicitly.
func loadSettings(v *viper.Viper, configFile string) (settings, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configFileName)
		v.SetConfigType(configFileExt)
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return settings{}, fmt.Errorf("load configuration: %w", err)
		}
	}

	var s settings
	if err := v.Unmarshal(&s); err != nil {
		return settings{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if _, err := innerscope.ParseStrategy(s.Strategy); err != nil {
		return settings{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return s, nil
}

// options turns the capture policy into ScopedFunction options.
func (s settings) options() []innerscope.Option {
	return []innerscope.Option{
		innerscope.WithClosures(s.UseClosures),
		innerscope.WithGlobals(s.UseGlobals),
	}
}

// newEngine builds an engine whose puts output goes to out and whose log
// lines go to logOut.
func (s settings) newEngine(out, logOut io.Writer) (*innerscope.Engine, error) {
	strategy, err := innerscope.ParseStrategy(s.Strategy)
	if err != nil {
		return nil, err
	}
	level := log.WarnLevel
	if s.Verbose {
		level = log.DebugLevel
	}
	logger := log.NewWithOptions(logOut, log.Options{
		Prefix: appName,
		Level:  level,
	})
	return innerscope.NewEngine(innerscope.Config{
		StepQuota:      s.StepQuota,
		RecursionLimit: s.RecursionLimit,
		Strategy:       strategy,
		Logger:         logger,
		Output:         out,
	})
}
