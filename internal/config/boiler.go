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

const boilerDefaultOfflineGrace = 20.0

// BoilerConfig points at the external boiler-availability input. When
// OnlineTopic is empty the boiler is assumed online.
type BoilerConfig struct {
	OnlineTopic  string   `yaml:"online_topic,omitempty"`
	JSONEntry    *string  `yaml:"json_entry,omitempty"`
	OfflineGrace *float64 `yaml:"offline_grace"`
}

func NewBoilerConfig() *BoilerConfig {
	cfg := &BoilerConfig{}
	cfg.FillDefaults()
	return cfg
}

func (c *BoilerConfig) FillDefaults() {
	if c.OfflineGrace == nil {
		c.OfflineGrace = GetPTR(boilerDefaultOfflineGrace)
	}
}
