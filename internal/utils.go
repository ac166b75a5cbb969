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
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// Payload a collaborator publishes when its backing device is gone.
const unavailablePayload = "unavailable"

func extractF64PlainOrJSON(topic string, payload []byte, jsonEntry *string) (float64, error) {
	if jsonEntry == nil {
		return strconv.ParseFloat(strings.TrimSpace(string(payload)), 64)
	}

	var valMap map[string]interface{}
	if err := json.Unmarshal(payload, &valMap); err != nil {
		return 0, errors.Wrapf(err, "json unmarshal error with : %v : %v", topic, string(payload))
	}

	v, ok := valMap[*jsonEntry]
	if !ok {
		return 0, fmt.Errorf("not found: `%v` in `%v`: %v", *jsonEntry, topic, string(payload))
	}

	t0, ok := v.(float64)
	if !ok {
		return 0, fmt.Errorf("cannot cast `%v` to float64 in : %v : %v", v, topic, string(payload))
	}

	return t0, nil
}

func parseBoolPayload(payload string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(payload)) {
	case "on", "true", "1", "open", "online", "heat":
		return true, nil
	case "off", "false", "0", "closed", "offline":
		return false, nil
	}
	return false, fmt.Errorf("cannot parse `%v` as a binary state", payload)
}

func extractBoolPlainOrJSON(topic string, payload []byte, jsonEntry *string) (bool, error) {
	if jsonEntry == nil {
		return parseBoolPayload(string(payload))
	}

	var valMap map[string]interface{}
	if err := json.Unmarshal(payload, &valMap); err != nil {
		return false, errors.Wrapf(err, "json unmarshal error with : %v : %v", topic, string(payload))
	}

	v, ok := valMap[*jsonEntry]
	if !ok {
		return false, fmt.Errorf("not found: `%v` in `%v`: %v", *jsonEntry, topic, string(payload))
	}

	switch t := v.(type) {
	case bool:
		return t, nil
	case string:
		return parseBoolPayload(t)
	}
	return false, fmt.Errorf("cannot cast `%v` to bool in : %v : %v", v, topic, string(payload))
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
