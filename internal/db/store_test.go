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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s := OpenDatabase(":memory:")
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func fptr(v float64) *float64 { return &v }

func TestPresetRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	row := PresetRow{Zone: "living", Name: "eco", Target: 18, Kp: fptr(0.5), Ki: fptr(0.001), Mode: "heat"}
	require.NoError(t, s.UpsertPreset(ctx, row))

	got, err := s.GetPreset(ctx, "living", "eco")
	require.NoError(t, err)
	assert.Equal(t, 18.0, got.Target)
	require.NotNil(t, got.Kp)
	assert.Equal(t, 0.5, *got.Kp)
	assert.Nil(t, got.Deadband)
	assert.Equal(t, "heat", got.Mode)

	// Save overwrites the named slot.
	row.Target = 17
	require.NoError(t, s.UpsertPreset(ctx, row))
	got, err = s.GetPreset(ctx, "living", "eco")
	require.NoError(t, err)
	assert.Equal(t, 17.0, got.Target)
}

func TestGetPresetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.GetPreset(context.Background(), "living", "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListPresets(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertPreset(ctx, PresetRow{Zone: "living", Name: "night", Target: 17, Mode: "heat"}))
	require.NoError(t, s.UpsertPreset(ctx, PresetRow{Zone: "living", Name: "comfort", Target: 22, Mode: "heat"}))
	require.NoError(t, s.UpsertPreset(ctx, PresetRow{Zone: "bath", Name: "comfort", Target: 23, Mode: "heat"}))

	rows, err := s.ListPresets(ctx, "living")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "comfort", rows[0].Name)
	assert.Equal(t, "night", rows[1].Name)
}

func TestZoneStateRoundtrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	preset := "eco"
	require.NoError(t, s.UpsertZoneState(ctx, ZoneStateRow{Zone: "living", Target: 19.5, Mode: "off", Preset: &preset}))

	got, err := s.GetZoneState(ctx, "living")
	require.NoError(t, err)
	assert.Equal(t, 19.5, got.Target)
	assert.Equal(t, "off", got.Mode)
	require.NotNil(t, got.Preset)
	assert.Equal(t, "eco", *got.Preset)

	_, err = s.GetZoneState(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteZoneCascades(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.UpsertPreset(ctx, PresetRow{Zone: "living", Name: "eco", Target: 18, Mode: "heat"}))
	require.NoError(t, s.UpsertZoneState(ctx, ZoneStateRow{Zone: "living", Target: 21, Mode: "heat"}))

	require.NoError(t, s.DeleteZone(ctx, "living"))

	_, err := s.GetPreset(ctx, "living", "eco")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetZoneState(ctx, "living")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestControllerValues(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.GetControllerValue(ctx, "enabled")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.UpsertControllerValue(ctx, "enabled", "true"))
	v, err := s.GetControllerValue(ctx, "enabled")
	require.NoError(t, err)
	assert.Equal(t, "true", v)

	require.NoError(t, s.UpsertControllerValue(ctx, "enabled", "false"))
	v, err = s.GetControllerValue(ctx, "enabled")
	require.NoError(t, err)
	assert.Equal(t, "false", v)
}
