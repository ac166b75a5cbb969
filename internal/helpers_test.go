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
)

var testStart = time.Date(2026, time.January, 10, 8, 0, 0, 0, time.UTC)

type pubMsg struct {
	topic    string
	retained bool
	payload  string
}

// fakePublisher records everything the engine would publish.
type fakePublisher struct {
	messages []pubMsg
}

func (f *fakePublisher) Publish(topic string, retained bool, payload string) {
	f.messages = append(f.messages, pubMsg{topic: topic, retained: retained, payload: payload})
}

// last returns the most recent payload published to topic.
func (f *fakePublisher) last(topic string) (string, bool) {
	for i := len(f.messages) - 1; i >= 0; i-- {
		if f.messages[i].topic == topic {
			return f.messages[i].payload, true
		}
	}
	return "", false
}

func (f *fakePublisher) count(topic string) int {
	n := 0
	for _, m := range f.messages {
		if m.topic == topic {
			n++
		}
	}
	return n
}

func pidZoneConfig(kp, ki, target float64) *config.ZoneConfig {
	zc := config.NewZoneConfig()
	zc.Regulator = config.RegulatorPID
	*zc.Kp = kp
	*zc.Ki = ki
	*zc.Target = target
	*zc.WindowWarmup = 0
	zc.Sensor.Topic = "sensors/test/temperature"
	return zc
}

func hysZoneConfig(deadband, target float64) *config.ZoneConfig {
	zc := config.NewZoneConfig()
	zc.Regulator = config.RegulatorHysteresis
	*zc.Deadband = deadband
	*zc.Target = target
	*zc.WindowWarmup = 0
	zc.Sensor.Topic = "sensors/test/temperature"
	return zc
}

func newTestZone(name string, zc *config.ZoneConfig) (*ZoneController, *fakePublisher) {
	pub := &fakePublisher{}
	return newZoneController(name, zc, pub, "mzclm", nil, testStart), pub
}
