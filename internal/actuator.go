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

// HeatActuator is anything that can be told to emit or stop emitting heat.
// Zones and circuits depend on this capability, never on a device type.
// Actuation is an intent: nothing waits for an acknowledgement.
type HeatActuator interface {
	SetHeat(on bool)
}

// switchActuator drives a relay (pump, boiler contact) with ON/OFF.
type switchActuator struct {
	pub   Publisher
	topic string
}

func (a *switchActuator) SetHeat(on bool) {
	payload := "OFF"
	if on {
		payload = "ON"
	}
	a.pub.Publish(a.topic, false, payload)
}

// trvActuator drives a thermostatic radiator valve through its climate
// mode command: heat to open, off to close.
type trvActuator struct {
	pub   Publisher
	topic string
}

func (a *trvActuator) SetHeat(on bool) {
	payload := "off"
	if on {
		payload = "heat"
	}
	a.pub.Publish(a.topic, false, payload)
}
