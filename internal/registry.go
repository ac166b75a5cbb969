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
	"sort"
)

// registry is the id-keyed home of zones and circuits. Circuits hold
// member ids, not pointers, and resolve them here on every pass, so a
// removed zone drops out of aggregation instead of dangling. Mutated only
// on the hub loop goroutine.
type registry struct {
	zones    map[string]*ZoneController
	circuits map[string]*CircuitController
}

func newRegistry() *registry {
	return &registry{
		zones:    make(map[string]*ZoneController),
		circuits: make(map[string]*CircuitController),
	}
}

func (r *registry) addZone(z *ZoneController) {
	r.zones[z.Name()] = z
}

func (r *registry) zone(id string) (*ZoneController, bool) {
	z, ok := r.zones[id]
	return z, ok
}

// removeZone deletes a zone and detaches it from every circuit that
// references it. Removing an unknown id is a no-op.
func (r *registry) removeZone(id string) {
	delete(r.zones, id)
	for _, c := range r.circuits {
		c.RemoveMember(id)
	}
}

func (r *registry) addCircuit(c *CircuitController) {
	r.circuits[c.Name()] = c
}

func (r *registry) circuit(id string) (*CircuitController, bool) {
	c, ok := r.circuits[id]
	return c, ok
}

func (r *registry) removeCircuit(id string) {
	delete(r.circuits, id)
}

// zoneIDs returns zone names in stable order, for deterministic walks.
func (r *registry) zoneIDs() []string {
	ids := make([]string, 0, len(r.zones))
	for id := range r.zones {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (r *registry) circuitIDs() []string {
	ids := make([]string, 0, len(r.circuits))
	for id := range r.circuits {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
