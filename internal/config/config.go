/*
 * Copyright (c) 2026. MZCLM Authors -- All Rights Reserved
 *
 * This file is part of MZCLM project.
 *
 * MZCLM is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as the Free Software Foundation,
 * either version 3 of the License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package config

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mzclm-dev/mzclm/internal/logger"

	"github.com/pborman/getopt/v2"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

const (
	defaultMQTTURL     = "tcp://127.0.0.1:1883"
	defaultBaseTopic   = "mzclm"
	defaultDBFile      = "mzclm.db"
	defaultConfigFile  = "config.yaml"
	defaultTickSeconds = 1.0
)

type Config struct {
	LogLevel     zapcore.Level             `yaml:"log_level"`
	MQTTConfig   *MQTTConfig               `yaml:"mqtt"`
	DBFile       string                    `yaml:"db_file"`
	TickInterval *float64                  `yaml:"tick_interval"`
	Boiler       *BoilerConfig             `yaml:"boiler"`
	Zones        map[string]*ZoneConfig    `yaml:"zones"`
	Circuits     map[string]*CircuitConfig `yaml:"circuits"`
}

func defConfig() *Config {
	return &Config{
		Zones:      make(map[string]*ZoneConfig),
		Circuits:   make(map[string]*CircuitConfig),
		Boiler:     NewBoilerConfig(),
		MQTTConfig: NewMQTTConfig(),
		DBFile:     defaultDBFile,
	}
}

func prettyPrint(cfg *Config) {
	d, err := yaml.Marshal(cfg)
	if err != nil {
		logger.L().Error("Failed to marshal config for pretty print", err)
		return
	}
	logger.L().Debugf("--- Config ---\n%s\n\n", string(d))
}

func (cfg *Config) FillDefaults() {
	cfg.MQTTConfig.FillDefaults()
	cfg.Boiler.FillDefaults()
	if cfg.TickInterval == nil {
		cfg.TickInterval = GetPTR(defaultTickSeconds)
	}
	for _, z := range cfg.Zones {
		z.FillDefaults()
	}
	for _, c := range cfg.Circuits {
		c.FillDefaults()
	}
}

// Validate rejects configurations the engine cannot run: unknown regulator
// kinds and circuits referencing zones that are not defined.
func (cfg *Config) Validate() error {
	for name, z := range cfg.Zones {
		if err := z.Validate(); err != nil {
			return fmt.Errorf("zone %q: %w", name, err)
		}
	}
	for name, c := range cfg.Circuits {
		for _, zid := range c.Zones {
			if _, ok := cfg.Zones[zid]; !ok {
				return fmt.Errorf("circuit %q references unknown zone %q", name, zid)
			}
		}
	}
	return nil
}

func Get() *Config {
	cfg := defConfig()
	logLevel := getopt.StringLong("log-level", 'l', "", "log levels: debug, info, warn, error, dpanic, panic, fatal")
	configFile := getopt.StringLong("config", 'c', defaultConfigFile, "config file pathname")

	getopt.Parse()

	if err := ReadFile(cfg, *configFile); err != nil {
		log.Panicf("GetConfig: %v", err)
	}

	logger.L().Infof("Using config file `%v`", *configFile)
	dbFile := getopt.StringLong("db", 'd', cfg.DBFile, "DB file pathname")

	if *dbFile != "" {
		cfg.DBFile = *dbFile
	}
	logger.L().Infof("Using DB file `%v`", cfg.DBFile)

	cfg.FillDefaults()
	if err := cfg.Validate(); err != nil {
		log.Panicf("GetConfig: %v", err)
	}

	if *logLevel != "" {
		if err := cfg.LogLevel.Set(*logLevel); err != nil {
			logger.L().Errorf("Wrong log level `%v`: %v", *logLevel, err)
		}
	}
	logger.SetLogLevel(cfg.LogLevel)

	prettyPrint(cfg)

	return cfg
}

func GetPTR[T any](v T) *T {
	return &v
}

func fileExists(filename string) bool {
	info, err := os.Stat(filename)
	return err == nil && !info.IsDir()
}

func ReadFile(cfg *Config, configFileName string) error {
	if !fileExists(configFileName) {
		return nil
	}

	f, err := os.Open(configFileName)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil && err != io.EOF {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to unmarshal config: %w", err)
		}
	}

	return nil
}
