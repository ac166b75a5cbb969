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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIDProportionalOnly(t *testing.T) {
	p := NewPID(1, 0, 100, 21)

	out := p.Update(20, 1)
	assert.Equal(t, 1.0, out)
	assert.Equal(t, 1.0, p.PTerm())

	out = p.Update(20.5, 1)
	assert.Equal(t, 0.5, out)
}

func TestPIDOutputClamped(t *testing.T) {
	p := NewPID(10, 0, 100, 21)

	assert.Equal(t, 1.0, p.Update(15, 1), "large positive error saturates high")
	assert.Equal(t, 0.0, p.Update(30, 1), "large negative error saturates low")
}

func TestPIDIntegralAccumulates(t *testing.T) {
	p := NewPID(0.1, 0.05, 100, 21)

	p.Update(20, 1) // err=1, integral=1
	p.Update(20, 1) // integral=2
	require.Equal(t, 2.0, p.Integral())
	assert.InDelta(t, 0.1+0.05*2, p.Output(), 1e-12)
}

func TestPIDIntegralFrozenOnSaturation(t *testing.T) {
	p := NewPID(1, 0.1, 100, 21)

	// err=5 -> raw way over 1, output clamps and integral must not advance
	p.Update(16, 1)
	assert.Equal(t, 1.0, p.Output())
	assert.Equal(t, 0.0, p.Integral())

	// small error inside the linear range advances the integral again
	p.Update(20.9, 1)
	assert.InDelta(t, 0.1, p.Integral(), 1e-12)
}

func TestPIDIntegralBoundedByIMax(t *testing.T) {
	p := NewPID(0, 0.001, 3, 21)

	for i := 0; i < 100; i++ {
		p.Update(20, 1) // err=1 each tick, unclamped output
	}
	assert.Equal(t, 3.0, p.Integral())
}

func TestPIDIntegralFrozenAtZeroSaturation(t *testing.T) {
	p := NewPID(0, 0.01, 3, 21)

	for i := 0; i < 10; i++ {
		p.Update(20, 1)
	}
	require.Equal(t, 3.0, p.Integral())

	// Room overshoots: the integral winds down while raw output stays
	// non-negative, then freezes once raw saturates at 0. It never goes
	// negative with a pure-I law.
	for i := 0; i < 10; i++ {
		p.Update(22, 1)
		require.GreaterOrEqual(t, p.Integral(), 0.0)
	}
	assert.Equal(t, 0.0, p.Integral())
	assert.Equal(t, 0.0, p.Output())
}

func TestPIDReset(t *testing.T) {
	p := NewPID(1, 0.1, 100, 21)
	p.Update(20.5, 1)
	require.NotZero(t, p.Output())

	p.Reset()
	assert.Zero(t, p.Output())
	assert.Zero(t, p.Integral())
	assert.Zero(t, p.PTerm())
}

func TestPIDSetGains(t *testing.T) {
	p := NewPID(1, 0, 100, 21)
	p.SetGains(2, 0.5)

	kp, ki := p.Gains()
	assert.Equal(t, 2.0, kp)
	assert.Equal(t, 0.5, ki)

	out := p.Update(20.8, 1) // err=0.2: P=0.4, I=0.5*0.2
	assert.InDelta(t, 0.4+0.1, out, 1e-12)
}
