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

import "fmt"

const (
	RegulatorPID        = "pid"
	RegulatorHysteresis = "hysteresis"

	zoneDefaultTarget   = 21.0
	zoneDefaultKp       = 0.5
	zoneDefaultKi       = 0.001
	zoneDefaultIMax     = 100.0
	zoneDefaultDeadband = 0.5
	zoneDefaultWarmup   = 300.0
	zoneDefaultStale    = 5.0
)

type ZoneConfig struct {
	Regulator     string                   `yaml:"regulator"`
	Target        *float64                 `yaml:"target"`
	Kp            *float64                 `yaml:"kp,omitempty"`
	Ki            *float64                 `yaml:"ki,omitempty"`
	IMax          *float64                 `yaml:"i_max,omitempty"`
	Deadband      *float64                 `yaml:"deadband,omitempty"`
	StaleAfter    *float64                 `yaml:"stale_after"`
	Sensor        *SensorConfig            `yaml:"sensor"`
	WindowSensors []*SensorConfig          `yaml:"window_sensors,omitempty"`
	WindowWarmup  *float64                 `yaml:"window_warmup,omitempty"`
	TRVs          []string                 `yaml:"trvs,omitempty"`
	Presets       map[string]*PresetConfig `yaml:"presets,omitempty"`
}

func (z *ZoneConfig) FillDefaults() {
	if z.Regulator == "" {
		z.Regulator = RegulatorPID
	}
	if z.Target == nil {
		z.Target = GetPTR(zoneDefaultTarget)
	}
	if z.Kp == nil {
		z.Kp = GetPTR(zoneDefaultKp)
	}
	if z.Ki == nil {
		z.Ki = GetPTR(zoneDefaultKi)
	}
	if z.IMax == nil {
		z.IMax = GetPTR(zoneDefaultIMax)
	}
	if z.Deadband == nil {
		z.Deadband = GetPTR(zoneDefaultDeadband)
	}
	if z.StaleAfter == nil {
		z.StaleAfter = GetPTR(zoneDefaultStale)
	}
	if z.WindowWarmup == nil {
		z.WindowWarmup = GetPTR(zoneDefaultWarmup)
	}
	if z.Sensor == nil {
		z.Sensor = NewSensorConfig()
	}
	z.Sensor.FillDefaults()
	for _, w := range z.WindowSensors {
		w.FillDefaults()
	}
}

func (z *ZoneConfig) Validate() error {
	if z.Regulator != RegulatorPID && z.Regulator != RegulatorHysteresis {
		return fmt.Errorf("unknown regulator kind %q", z.Regulator)
	}
	if z.Sensor == nil || z.Sensor.Topic == "" {
		return fmt.Errorf("temperature sensor topic is required")
	}
	return nil
}

func NewZoneConfig() *ZoneConfig {
	cfg := &ZoneConfig{Sensor: NewSensorConfig()}
	cfg.FillDefaults()
	return cfg
}
