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

package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestWindowTrackerOpenBlocksHeat(t *testing.T) {
	w := newWindowTracker(5 * time.Minute)

	assert.True(t, w.shouldHeat(testStart))
	assert.True(t, w.setOpen(true, testStart))
	assert.False(t, w.shouldHeat(testStart))
	assert.True(t, w.isOpen())

	// repeated state is not a change
	assert.False(t, w.setOpen(true, testStart.Add(time.Second)))
}

func TestWindowTrackerWarmupAfterClose(t *testing.T) {
	w := newWindowTracker(5 * time.Minute)

	w.setOpen(true, testStart)
	closed := testStart.Add(10 * time.Minute)
	assert.True(t, w.setOpen(false, closed))

	assert.False(t, w.shouldHeat(closed))
	assert.False(t, w.shouldHeat(closed.Add(4*time.Minute)))
	assert.True(t, w.shouldHeat(closed.Add(5*time.Minute)))
}

func TestWindowTrackerReopenDuringWarmup(t *testing.T) {
	w := newWindowTracker(5 * time.Minute)

	w.setOpen(true, testStart)
	w.setOpen(false, testStart.Add(time.Minute))
	assert.True(t, w.setOpen(true, testStart.Add(2*time.Minute)))
	assert.False(t, w.shouldHeat(testStart.Add(20*time.Minute)))
}

func TestWindowTrackerZeroWarmup(t *testing.T) {
	w := newWindowTracker(0)

	w.setOpen(true, testStart)
	w.setOpen(false, testStart.Add(time.Minute))
	assert.True(t, w.shouldHeat(testStart.Add(time.Minute)))
}
