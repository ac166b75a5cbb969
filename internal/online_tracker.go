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
	"time"

	"github.com/mzclm-dev/mzclm/internal/logger"
)

// onlineTracker debounces an availability input: a device that drops out
// gets a grace window to resolve itself before the fault latches. Fault
// transitions are edge-triggered through onFault; onOffline fires once
// when the fault latches.
type onlineTracker struct {
	name         string
	grace        time.Duration
	faulted      bool
	pendingSince time.Time
	onFault      func(faulted bool)
	onOffline    func()
}

func newOnlineTracker(name string, grace time.Duration, onFault func(bool), onOffline func()) *onlineTracker {
	return &onlineTracker{name: name, grace: grace, onFault: onFault, onOffline: onOffline}
}

// observe folds the raw availability into the grace window and returns the
// effective availability.
func (t *onlineTracker) observe(online bool, now time.Time) bool {
	if online {
		if t.faulted {
			logger.L().Infof("%s has come back after the fault state", t.name)
			t.faulted = false
			if t.onFault != nil {
				t.onFault(false)
			}
		} else if !t.pendingSince.IsZero() {
			logger.L().Infof("%s has come back in less than %v", t.name, t.grace)
		}
		t.pendingSince = time.Time{}
		return true
	}

	if t.faulted {
		// Fault is already set, wait for the device to come back
		return false
	}

	if t.pendingSince.IsZero() {
		logger.L().Infof("%s became offline, waiting for %v to resolve itself", t.name, t.grace)
		t.pendingSince = now
		return true
	}

	if now.Sub(t.pendingSince) < t.grace {
		// Still giving it a chance
		return true
	}

	t.pendingSince = time.Time{}
	t.faulted = true
	logger.L().Warnf("%s didn't come back in %v", t.name, t.grace)
	if t.onOffline != nil {
		t.onOffline()
	}
	if t.onFault != nil {
		t.onFault(true)
	}
	return false
}

func (t *onlineTracker) isFaulted() bool { return t.faulted }
