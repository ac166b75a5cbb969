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
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mzclm-dev/mzclm/internal/config"
)

func TestExtractF64Plain(t *testing.T) {
	v, err := extractF64PlainOrJSON("t", []byte(" 21.5 \n"), nil)
	require.NoError(t, err)
	assert.Equal(t, 21.5, v)

	_, err = extractF64PlainOrJSON("t", []byte("warm"), nil)
	assert.Error(t, err)
}

func TestExtractF64JSON(t *testing.T) {
	entry := config.GetPTR("temperature")

	v, err := extractF64PlainOrJSON("t", []byte(`{"temperature": 19.25, "humidity": 40}`), entry)
	require.NoError(t, err)
	assert.Equal(t, 19.25, v)

	_, err = extractF64PlainOrJSON("t", []byte(`{"humidity": 40}`), entry)
	assert.Error(t, err)

	_, err = extractF64PlainOrJSON("t", []byte(`{"temperature": "hot"}`), entry)
	assert.Error(t, err)

	_, err = extractF64PlainOrJSON("t", []byte(`not json`), entry)
	assert.Error(t, err)
}

func TestParseBoolPayload(t *testing.T) {
	for _, s := range []string{"ON", "true", "1", "open", "Online", "heat"} {
		v, err := parseBoolPayload(s)
		require.NoError(t, err, s)
		assert.True(t, v, s)
	}
	for _, s := range []string{"off", "FALSE", "0", "closed", "offline"} {
		v, err := parseBoolPayload(s)
		require.NoError(t, err, s)
		assert.False(t, v, s)
	}
	_, err := parseBoolPayload("maybe")
	assert.Error(t, err)
}

func TestExtractBoolJSON(t *testing.T) {
	entry := config.GetPTR("state")

	v, err := extractBoolPlainOrJSON("t", []byte(`{"state": true}`), entry)
	require.NoError(t, err)
	assert.True(t, v)

	v, err = extractBoolPlainOrJSON("t", []byte(`{"state": "OFF"}`), entry)
	require.NoError(t, err)
	assert.False(t, v)

	_, err = extractBoolPlainOrJSON("t", []byte(`{"state": 3.5}`), entry)
	assert.Error(t, err)
}

func TestIsFinite(t *testing.T) {
	assert.True(t, isFinite(0))
	assert.True(t, isFinite(-12.5))
	assert.False(t, isFinite(math.NaN()))
	assert.False(t, isFinite(math.Inf(1)))
	assert.False(t, isFinite(math.Inf(-1)))
}

func TestSplitCommandTopic(t *testing.T) {
	id, cmd, ok := splitCommandTopic("mzclm/zone/living/set/target", "mzclm/zone/")
	require.True(t, ok)
	assert.Equal(t, "living", id)
	assert.Equal(t, "target", cmd)

	id, cmd, ok = splitCommandTopic("mzclm/zone/living/set/preset/activate", "mzclm/zone/")
	require.True(t, ok)
	assert.Equal(t, "living", id)
	assert.Equal(t, "preset/activate", cmd)

	_, _, ok = splitCommandTopic("mzclm/circuit/floor1/set/setpoint", "mzclm/zone/")
	assert.False(t, ok)

	_, _, ok = splitCommandTopic("mzclm/zone/living/get/target", "mzclm/zone/")
	assert.False(t, ok)
}
