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

// PresetConfig seeds a named preset for a zone. Fields left nil keep the
// zone's live value when the preset is activated. Mode is "heat" or "off";
// empty keeps the current mode.
type PresetConfig struct {
	Target   *float64 `yaml:"target,omitempty"`
	Kp       *float64 `yaml:"kp,omitempty"`
	Ki       *float64 `yaml:"ki,omitempty"`
	Deadband *float64 `yaml:"deadband,omitempty"`
	Mode     string   `yaml:"mode,omitempty"`
}
