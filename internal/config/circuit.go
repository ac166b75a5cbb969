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

// CircuitConfig groups zones behind shared pump/relay switches. MinDwell
// (seconds) optionally keeps a switch in its state for at least that long;
// 0 disables anti-short-cycle protection.
type CircuitConfig struct {
	Zones    []string `yaml:"zones"`
	Switches []string `yaml:"switches,omitempty"`
	MinDwell *float64 `yaml:"min_dwell"`
}

func (c *CircuitConfig) FillDefaults() {
	if c.MinDwell == nil {
		c.MinDwell = GetPTR(0.0)
	}
}

func NewCircuitConfig() *CircuitConfig {
	cfg := &CircuitConfig{}
	cfg.FillDefaults()
	return cfg
}
