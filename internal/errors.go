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

import "github.com/pkg/errors"

// Command errors surfaced synchronously to the caller. Regulation faults
// (stale sensor, non-finite output) are not errors: they are recovered
// locally and exposed as fault flags instead.
var (
	ErrConfigMismatch = errors.New("operation does not match the zone's regulator kind")
	ErrPresetNotFound = errors.New("preset not found")
	ErrUnknownMember  = errors.New("unknown member id")
)
