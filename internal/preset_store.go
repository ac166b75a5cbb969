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
	"context"

	"github.com/pkg/errors"

	"github.com/mzclm-dev/mzclm/internal/config"
	"github.com/mzclm-dev/mzclm/internal/db"
)

// presetStore resolves named presets per zone. Presets saved at runtime
// live in the database and shadow the ones from the config file.
type presetStore struct {
	cfg   map[string]map[string]*config.PresetConfig // zone -> name -> preset
	store *db.Store
}

func newPresetStore(zones map[string]*config.ZoneConfig, store *db.Store) *presetStore {
	ps := &presetStore{
		cfg:   make(map[string]map[string]*config.PresetConfig),
		store: store,
	}
	for name, zc := range zones {
		ps.cfg[name] = zc.Presets
	}
	return ps
}

// Get looks a preset up, database first, then the config file. Returns
// ErrPresetNotFound when neither knows the name.
func (ps *presetStore) Get(zone string, name string) (Preset, error) {
	if ps.store != nil {
		row, err := ps.store.GetPreset(context.Background(), zone, name)
		if err == nil {
			return presetFromRow(row), nil
		}
		if !errors.Is(err, db.ErrNotFound) {
			return Preset{}, errors.Wrapf(err, "failed to look up preset %s for zone %s", name, zone)
		}
	}

	if pc, ok := ps.cfg[zone][name]; ok && pc.Target != nil {
		return presetFromConfig(pc), nil
	}
	return Preset{}, errors.Wrapf(ErrPresetNotFound, "zone %s preset %s", zone, name)
}

// Save writes a runtime preset, overwriting any previous value.
func (ps *presetStore) Save(zone string, name string, p Preset) error {
	if ps.store == nil {
		return errors.New("no database configured, cannot save presets")
	}
	row := db.PresetRow{
		Zone:     zone,
		Name:     name,
		Target:   p.Target,
		Kp:       p.Kp,
		Ki:       p.Ki,
		Deadband: p.Deadband,
		Mode:     string(p.Mode),
	}
	return ps.store.UpsertPreset(context.Background(), row)
}

func presetFromRow(row db.PresetRow) Preset {
	p := Preset{
		Target:   row.Target,
		Kp:       row.Kp,
		Ki:       row.Ki,
		Deadband: row.Deadband,
	}
	if mode, ok := ParseMode(row.Mode); ok {
		p.Mode = mode
	}
	return p
}

func presetFromConfig(pc *config.PresetConfig) Preset {
	p := Preset{
		Target:   *pc.Target,
		Kp:       pc.Kp,
		Ki:       pc.Ki,
		Deadband: pc.Deadband,
	}
	if mode, ok := ParseMode(pc.Mode); ok && pc.Mode != "" {
		p.Mode = mode
	}
	return p
}
