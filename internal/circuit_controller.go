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

// CircuitController groups zones sharing one hydraulic loop. Members are
// held by id and resolved through the registry on every pass; an id whose
// zone has vanished is logged and excluded. The loop's pump or valve
// switches are driven on demand edges, subject to a minimum dwell between
// flips.
type CircuitController struct {
	name string
	cfg  *config.CircuitConfig

	members []string
	reg     *registry

	switches []HeatActuator

	active     bool
	lastSwitch time.Time
	pending    bool // a flip was suppressed by the dwell and must be retried
	hold       bool // switches are forced on and must not follow demand

	tel *telemetry
}

func newCircuitController(name string, cfg *config.CircuitConfig, reg *registry, pub Publisher, baseTopic string) *CircuitController {
	c := &CircuitController{
		name:    name,
		cfg:     cfg,
		members: append([]string(nil), cfg.Zones...),
		reg:     reg,
		tel:     newTelemetry(pub, baseTopic+"/circuit/"+name),
	}
	for _, topic := range cfg.Switches {
		c.switches = append(c.switches, &switchActuator{pub: pub, topic: topic})
	}
	return c
}

func (c *CircuitController) Name() string { return c.name }

func (c *CircuitController) Active() bool { return c.active }

func (c *CircuitController) Members() []string { return c.members }

// AddMember appends a zone id; adding one that is already present is a
// no-op.
func (c *CircuitController) AddMember(id string) {
	for _, m := range c.members {
		if m == id {
			return
		}
	}
	c.members = append(c.members, id)
}

// RemoveMember drops a zone id; removing an unknown id is a no-op.
func (c *CircuitController) RemoveMember(id string) {
	for i, m := range c.members {
		if m == id {
			c.members = append(c.members[:i], c.members[i+1:]...)
			return
		}
	}
}

// zones resolves the member ids against the registry, logging and
// skipping any id with no zone behind it.
func (c *CircuitController) zones() []*ZoneController {
	out := make([]*ZoneController, 0, len(c.members))
	for _, id := range c.members {
		z, ok := c.reg.zone(id)
		if !ok {
			logger.L().Errorf("Circuit %s: %v, excluding zone %s from aggregation", c.name, ErrUnknownMember, id)
			continue
		}
		out = append(out, z)
	}
	return out
}

// Demand is the OR over member zone outputs.
func (c *CircuitController) Demand() bool {
	for _, z := range c.zones() {
		if z.Output() > 0 {
			return true
		}
	}
	return false
}

// Recompute re-derives the active flag from member demand and drives the
// switches when it changes. Within min_dwell of the previous flip the
// hardware is left alone and the flip retried on a later pass. A failsafe
// hold keeps the switches energized regardless of demand.
func (c *CircuitController) Recompute(now time.Time) bool {
	if c.hold {
		return c.active
	}

	want := c.Demand()
	if want == c.active && !c.pending {
		return c.active
	}

	dwell := seconds(*c.cfg.MinDwell)
	if dwell > 0 && !c.lastSwitch.IsZero() && now.Sub(c.lastSwitch) < dwell {
		c.pending = true
		return c.active
	}
	c.pending = false

	if want != c.active {
		c.active = want
		c.lastSwitch = now
		logger.L().Infof("Circuit %s is now %s", c.name, map[bool]string{true: "active", false: "inactive"}[want])
		for _, sw := range c.switches {
			sw.SetHeat(want)
		}
		c.tel.publishBool("active", want)
	}
	return c.active
}

// SetSetpoint broadcasts one target to every member zone. Targets flow
// down only; zone outputs flow up.
func (c *CircuitController) SetSetpoint(value float64) {
	for _, z := range c.zones() {
		z.SetTarget(value)
	}
	c.tel.publishFloat("setpoint", value)
}

// SetMode broadcasts a mode to every member zone.
func (c *CircuitController) SetMode(mode Mode) {
	for _, z := range c.zones() {
		z.SetMode(mode)
	}
	c.tel.publish("mode", string(mode))
}

// EnergizeSwitches forces the loop hardware on and holds it, used by the
// boiler-offline failsafe so residual heat keeps moving.
func (c *CircuitController) EnergizeSwitches(now time.Time) {
	c.active = true
	c.lastSwitch = now
	c.pending = false
	c.hold = true
	for _, sw := range c.switches {
		sw.SetHeat(true)
	}
	c.tel.publishBool("active", true)
}

// ReleaseSwitches ends the hold; the next Recompute follows demand again.
func (c *CircuitController) ReleaseSwitches() {
	c.hold = false
	c.pending = true
}
