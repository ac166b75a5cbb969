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
	"strconv"

	"github.com/mzclm-dev/mzclm/internal/safe_mqtt"
)

const mqttQoS = 1

// Publisher is the engine's outbound edge. Implementations must not block;
// delivery is fire-and-forget.
type Publisher interface {
	Publish(topic string, retained bool, payload string)
}

type mqttPublisher struct {
	mqtt safe_mqtt.MqttClient
}

func (p *mqttPublisher) Publish(topic string, retained bool, payload string) {
	p.mqtt.SafePublish(topic, mqttQoS, retained, payload)
}

// telemetry publishes one entity's observables, suppressing repeats so
// subscribers see edges only.
type telemetry struct {
	pub  Publisher
	base string
	last map[string]string
}

func newTelemetry(pub Publisher, base string) *telemetry {
	return &telemetry{pub: pub, base: base, last: make(map[string]string)}
}

func (t *telemetry) publish(name, payload string) {
	if prev, ok := t.last[name]; ok && prev == payload {
		return
	}
	t.last[name] = payload
	t.pub.Publish(t.base+"/"+name, true, payload)
}

func (t *telemetry) publishFloat(name string, v float64) {
	t.publish(name, strconv.FormatFloat(v, 'f', 4, 64))
}

func (t *telemetry) publishBool(name string, v bool) {
	payload := "OFF"
	if v {
		payload = "ON"
	}
	t.publish(name, payload)
}
