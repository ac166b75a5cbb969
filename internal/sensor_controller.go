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

	"github.com/mzclm-dev/mzclm/internal/config"
	"github.com/mzclm-dev/mzclm/internal/logger"
)

// SensorController gates one zone's temperature input: it applies the
// configured scale/offset, tracks freshness and raises/clears the sensor
// fault on edges. A reading older than staleAfter, or a sensor reporting
// itself unavailable, is a fault.
type SensorController struct {
	name        string
	cfg         *config.SensorConfig
	staleAfter  time.Duration
	value       float64
	lastReading time.Time
	hasReading  bool
	unavailable bool
	fault       bool
	onFault     func(faulted bool)
}

// newSensorController starts the freshness clock at start, so a sensor
// that never reports at all still faults one staleAfter later.
func newSensorController(name string, cfg *config.SensorConfig, staleAfter time.Duration, start time.Time, onFault func(bool)) *SensorController {
	return &SensorController{
		name:        name,
		cfg:         cfg,
		staleAfter:  staleAfter,
		lastReading: start,
		onFault:     onFault,
	}
}

// onReading records a validated sample and clears any latched fault.
func (s *SensorController) onReading(raw float64, at time.Time) {
	s.value = raw*(*s.cfg.Scale) + (*s.cfg.Offset)
	s.lastReading = at
	s.hasReading = true
	s.unavailable = false
	s.setFault(false)
	logger.L().Debugf("Got value for sensor %s : %f", s.name, s.value)
}

// markUnavailable notes that the sensor reported itself invalid; the fault
// latches on the next tick.
func (s *SensorController) markUnavailable(at time.Time) {
	s.unavailable = true
	s.lastReading = at
}

// tick re-evaluates staleness and returns the current fault state.
func (s *SensorController) tick(now time.Time) bool {
	stale := now.Sub(s.lastReading) > s.staleAfter
	s.setFault(stale || s.unavailable)
	return s.fault
}

// current returns the last gated value; ok is false until a first valid
// reading arrived and whenever the sensor is faulted.
func (s *SensorController) current() (float64, bool) {
	return s.value, s.hasReading && !s.fault
}

func (s *SensorController) setFault(fault bool) {
	if fault == s.fault {
		return
	}
	s.fault = fault
	if fault {
		logger.L().Warnf("Sensor %s is offline, declaring fault", s.name)
	} else {
		logger.L().Infof("Sensor %s has come back after the fault state", s.name)
	}
	if s.onFault != nil {
		s.onFault(fault)
	}
}
