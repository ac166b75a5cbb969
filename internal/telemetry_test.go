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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTelemetrySuppressesRepeats(t *testing.T) {
	pub := &fakePublisher{}
	tel := newTelemetry(pub, "mzclm/zone/living")

	tel.publishFloat("output", 0.5)
	tel.publishFloat("output", 0.5)
	tel.publishFloat("output", 0.75)

	assert.Equal(t, 2, pub.count("mzclm/zone/living/output"))
	last, ok := pub.last("mzclm/zone/living/output")
	require.True(t, ok)
	assert.Equal(t, "0.7500", last)
}

func TestTelemetryPublishesRetained(t *testing.T) {
	pub := &fakePublisher{}
	tel := newTelemetry(pub, "mzclm/hub")

	tel.publishBool("boiler_fault", true)
	require.Len(t, pub.messages, 1)
	assert.True(t, pub.messages[0].retained)
	assert.Equal(t, "ON", pub.messages[0].payload)

	tel.publishBool("boiler_fault", false)
	last, _ := pub.last("mzclm/hub/boiler_fault")
	assert.Equal(t, "OFF", last)
}
