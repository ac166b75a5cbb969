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

import "time"

// windowTracker suspends regulation while a window is open and for a
// warmup period after it closes, so a cold draft does not wind the
// regulator up the moment the window shuts.
type windowTracker struct {
	open        bool
	warmup      time.Duration
	warmupUntil time.Time
}

func newWindowTracker(warmup time.Duration) *windowTracker {
	return &windowTracker{warmup: warmup}
}

// setOpen applies a new window state; returns true when the state changed.
func (w *windowTracker) setOpen(open bool, now time.Time) bool {
	if open == w.open {
		return false
	}
	w.open = open
	if open {
		w.warmupUntil = time.Time{}
	} else {
		w.warmupUntil = now.Add(w.warmup)
	}
	return true
}

func (w *windowTracker) isOpen() bool { return w.open }

// shouldHeat reports whether regulation may run: window closed and any
// pending warmup elapsed.
func (w *windowTracker) shouldHeat(now time.Time) bool {
	if w.open {
		return false
	}
	if !w.warmupUntil.IsZero() {
		if now.Before(w.warmupUntil) {
			return false
		}
		w.warmupUntil = time.Time{}
	}
	return true
}
