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

// Mode is what a zone is asked to do. Off bypasses the state machine:
// output goes to 0 and the PID integral is reset immediately.
type Mode string

const (
	ModeHeat Mode = "heat"
	ModeOff  Mode = "off"
)

func ParseMode(s string) (Mode, bool) {
	switch Mode(s) {
	case ModeHeat, ModeOff:
		return Mode(s), true
	}
	return "", false
}

// Preset is a named configuration bundle recalled atomically. Gains and
// deadband are pointers because a slot stores only the fields matching the
// zone's regulator kind; nil fields leave the live value alone.
type Preset struct {
	Target   float64
	Kp       *float64
	Ki       *float64
	Deadband *float64
	Mode     Mode
}

// Events consumed by the hub loop. MQTT handlers only parse payloads and
// push these; every state mutation happens on the loop goroutine.

type readingEvent struct {
	zone  string
	value float64
	ok    bool // false: the sensor reported itself unavailable
	at    time.Time
}

type windowEvent struct {
	zone   string
	sensor string
	open   bool
}

type zoneTargetEvent struct {
	zone  string
	value float64
}

type zoneModeEvent struct {
	zone string
	mode Mode
}

type zoneGainsEvent struct {
	zone string
	kp   float64
	ki   float64
}

type zoneDeadbandEvent struct {
	zone  string
	value float64
}

type presetActivateEvent struct {
	zone string
	name string
}

type presetSaveEvent struct {
	zone string
	name string
}

type circuitSetpointEvent struct {
	circuit string
	value   float64
}

type circuitModeEvent struct {
	circuit string
	mode    Mode
}

type circuitPresetEvent struct {
	circuit string
	name    string
}

type boilerEvent struct {
	online bool
}

type enableEvent struct {
	on bool
}
