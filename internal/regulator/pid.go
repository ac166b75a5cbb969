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

// PID is a proportional-integral law with output clamped to [0,1].
// Anti-windup: the integral is advanced only on ticks where the raw
// output was not saturated, and is always bounded by ±iMax.
type PID struct {
	kp       float64
	ki       float64
	iMax     float64
	target   float64
	integral float64
	lastErr  float64
	output   float64
}

func NewPID(kp, ki, iMax, target float64) *PID {
	return &PID{kp: kp, ki: ki, iMax: iMax, target: target}
}

func (p *PID) Update(current float64, dt float64) float64 {
	err := p.target - current
	p.lastErr = err

	next := clamp(p.integral+err*dt, -p.iMax, p.iMax)
	raw := p.kp*err + p.ki*next
	out := clamp(raw, 0, 1)

	// Freeze-on-saturation: keep the old integral if raw got clamped.
	if raw == out {
		p.integral = next
	}

	p.output = out
	return out
}

func (p *PID) Output() float64 { return p.output }

func (p *PID) Target() float64 { return p.target }

func (p *PID) SetTarget(value float64) { p.target = value }

func (p *PID) SetGains(kp, ki float64) {
	p.kp = kp
	p.ki = ki
}

func (p *PID) Gains() (kp, ki float64) { return p.kp, p.ki }

func (p *PID) Reset() {
	p.integral = 0
	p.lastErr = 0
	p.output = 0
}

// PTerm is the proportional component of the last update.
func (p *PID) PTerm() float64 { return p.kp * p.lastErr }

// ITerm is the integral component of the last update.
func (p *PID) ITerm() float64 { return p.ki * p.integral }

func (p *PID) Integral() float64 { return p.integral }
