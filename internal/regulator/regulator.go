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

// Package regulator holds the pure control laws that turn a temperature
// sample into a normalized heat demand in [0,1]. No I/O, no clocks; the
// caller owns the tick cadence and passes dt explicitly.
package regulator

// Kind selects the control law for a zone.
type Kind string

const (
	KindPID        Kind = "pid"
	KindHysteresis Kind = "hysteresis"
)

func (k Kind) Valid() bool {
	return k == KindPID || k == KindHysteresis
}

// Regulator computes heat demand from the current temperature.
type Regulator interface {
	// Update advances the law by dt seconds and returns the new output.
	Update(current float64, dt float64) float64
	Output() float64
	Target() float64
	SetTarget(value float64)
	// Reset drops accumulated state and forces the output to 0.
	Reset()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
