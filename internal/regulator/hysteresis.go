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

package regulator

// Hysteresis is an on/off law with a dead zone of ±deadband around the
// target. Inside the band the previous output is held, so the actuator
// never chatters.
type Hysteresis struct {
	target   float64
	deadband float64
	output   float64
}

func NewHysteresis(deadband, target float64) *Hysteresis {
	return &Hysteresis{target: target, deadband: deadband}
}

func (h *Hysteresis) Update(current float64, _ float64) float64 {
	switch {
	case current < h.target-h.deadband:
		h.output = 1
	case current > h.target+h.deadband:
		h.output = 0
	}
	return h.output
}

func (h *Hysteresis) Output() float64 { return h.output }

func (h *Hysteresis) Target() float64 { return h.target }

func (h *Hysteresis) SetTarget(value float64) { h.target = value }

func (h *Hysteresis) SetDeadband(value float64) { h.deadband = value }

func (h *Hysteresis) Deadband() float64 { return h.deadband }

func (h *Hysteresis) Reset() { h.output = 0 }
