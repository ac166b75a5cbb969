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

package db

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
)

// ErrNotFound is what callers should compare against for missing rows.
var ErrNotFound = sql.ErrNoRows

// Store persists presets and per-zone runtime state in sqlite.
type Store struct {
	db *sqlx.DB
}

type PresetRow struct {
	Zone     string   `db:"zone"`
	Name     string   `db:"name"`
	Target   float64  `db:"target"`
	Kp       *float64 `db:"kp"`
	Ki       *float64 `db:"ki"`
	Deadband *float64 `db:"deadband"`
	Mode     string   `db:"mode"`
}

type ZoneStateRow struct {
	Zone   string  `db:"zone"`
	Target float64 `db:"target"`
	Mode   string  `db:"mode"`
	Preset *string `db:"preset"`
}

func (s *Store) UpsertPreset(ctx context.Context, row PresetRow) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO presets (zone, name, target, kp, ki, deadband, mode)
		VALUES (:zone, :name, :target, :kp, :ki, :deadband, :mode)
		ON CONFLICT (zone, name) DO UPDATE SET
			target = excluded.target,
			kp = excluded.kp,
			ki = excluded.ki,
			deadband = excluded.deadband,
			mode = excluded.mode`, row)
	return err
}

func (s *Store) GetPreset(ctx context.Context, zone, name string) (PresetRow, error) {
	var row PresetRow
	err := s.db.GetContext(ctx, &row,
		`SELECT zone, name, target, kp, ki, deadband, mode FROM presets WHERE zone = ? AND name = ?`,
		zone, name)
	return row, err
}

func (s *Store) ListPresets(ctx context.Context, zone string) ([]PresetRow, error) {
	var rows []PresetRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT zone, name, target, kp, ki, deadband, mode FROM presets WHERE zone = ? ORDER BY name`,
		zone)
	return rows, err
}

func (s *Store) UpsertZoneState(ctx context.Context, row ZoneStateRow) error {
	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO zone_state (zone, target, mode, preset)
		VALUES (:zone, :target, :mode, :preset)
		ON CONFLICT (zone) DO UPDATE SET
			target = excluded.target,
			mode = excluded.mode,
			preset = excluded.preset`, row)
	return err
}

func (s *Store) GetZoneState(ctx context.Context, zone string) (ZoneStateRow, error) {
	var row ZoneStateRow
	err := s.db.GetContext(ctx, &row,
		`SELECT zone, target, mode, preset FROM zone_state WHERE zone = ?`, zone)
	return row, err
}

// DeleteZone drops everything stored for a removed zone.
func (s *Store) DeleteZone(ctx context.Context, zone string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM presets WHERE zone = ?`, zone); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM zone_state WHERE zone = ?`, zone)
	return err
}

func (s *Store) UpsertControllerValue(ctx context.Context, name, value string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO controller_values (name, value) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET value = excluded.value`, name, value)
	return err
}

func (s *Store) GetControllerValue(ctx context.Context, name string) (string, error) {
	var value string
	err := s.db.GetContext(ctx, &value, `SELECT value FROM controller_values WHERE name = ?`, name)
	return value, err
}

func (s *Store) Close() error {
	return s.db.Close()
}
