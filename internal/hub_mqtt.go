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
	"strconv"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/mzclm-dev/mzclm/internal/config"
	"github.com/mzclm-dev/mzclm/internal/logger"
)

// MQTT handlers run on paho's goroutines. They only parse payloads and
// push events; every mutation happens on the Run loop.

func (c *HubController) setupMQTTSubscriptions() {
	base := c.cfg.MQTTConfig.BaseTopic

	c.mqtt.SafeSubscribe(base+"/zone/+/set/#", mqttQoS, c.zoneCommandHandler)
	c.mqtt.SafeSubscribe(base+"/circuit/+/set/#", mqttQoS, c.circuitCommandHandler)
	c.mqtt.SafeSubscribe(base+"/control/enable", mqttQoS, c.controlUpdateHandler)
	c.mqtt.SafeSubscribe(base+"/control/log_level", mqttQoS, c.controlUpdateHandler)

	for name, zc := range c.cfg.Zones {
		c.subscribeTemperature(name, zc.Sensor)
		for _, ws := range zc.WindowSensors {
			c.subscribeWindow(name, ws)
		}
	}

	if c.cfg.Boiler.OnlineTopic != "" {
		c.mqtt.SafeSubscribe(c.cfg.Boiler.OnlineTopic, mqttQoS, c.boilerStatusHandler)
	}
}

func (c *HubController) pushEvent(ev any) {
	c.events <- ev
}

func (c *HubController) subscribeTemperature(zone string, sensor *config.SensorConfig) {
	c.mqtt.SafeSubscribe(sensor.Topic, mqttQoS, func(client mqtt.Client, message mqtt.Message) {
		now := time.Now()
		if strings.TrimSpace(string(message.Payload())) == unavailablePayload {
			c.pushEvent(readingEvent{zone: zone, ok: false, at: now})
			return
		}
		value, err := extractF64PlainOrJSON(message.Topic(), message.Payload(), sensor.JSONEntry)
		if err != nil {
			logger.L().Errorf("Bad temperature reading for zone %s: %v", zone, err)
			return
		}
		c.pushEvent(readingEvent{zone: zone, value: value, ok: true, at: now})
	})
}

func (c *HubController) subscribeWindow(zone string, sensor *config.SensorConfig) {
	topic := sensor.Topic
	jsonEntry := sensor.JSONEntry
	c.mqtt.SafeSubscribe(topic, mqttQoS, func(client mqtt.Client, message mqtt.Message) {
		open, err := extractBoolPlainOrJSON(message.Topic(), message.Payload(), jsonEntry)
		if err != nil {
			logger.L().Errorf("Bad window state for zone %s: %v", zone, err)
			return
		}
		c.pushEvent(windowEvent{zone: zone, sensor: topic, open: open})
	})
}

func (c *HubController) boilerStatusHandler(client mqtt.Client, message mqtt.Message) {
	online, err := extractBoolPlainOrJSON(message.Topic(), message.Payload(), c.cfg.Boiler.JSONEntry)
	if err != nil {
		logger.L().Errorf("Bad boiler status: %v", err)
		return
	}
	c.pushEvent(boilerEvent{online: online})
}

type gainsPayload struct {
	Kp *float64 `json:"kp"`
	Ki *float64 `json:"ki"`
}

func (c *HubController) zoneCommandHandler(client mqtt.Client, message mqtt.Message) {
	zone, cmd, ok := splitCommandTopic(message.Topic(), c.cfg.MQTTConfig.BaseTopic+"/zone/")
	if !ok {
		return
	}
	payload := strings.TrimSpace(string(message.Payload()))
	logger.L().Infof("Got MQTT command for zone %s: %v : %v", zone, cmd, payload)

	switch cmd {
	case "target":
		if v, err := strconv.ParseFloat(payload, 64); err == nil {
			c.pushEvent(zoneTargetEvent{zone: zone, value: v})
		} else {
			logger.L().Errorf("Bad target for zone %s: %v", zone, err)
		}
	case "mode":
		if mode, ok := ParseMode(payload); ok {
			c.pushEvent(zoneModeEvent{zone: zone, mode: mode})
		} else {
			logger.L().Errorf("Bad mode `%v` for zone %s", payload, zone)
		}
	case "gains":
		var g gainsPayload
		if err := json.Unmarshal(message.Payload(), &g); err != nil || g.Kp == nil || g.Ki == nil {
			logger.L().Errorf("Bad gains payload `%v` for zone %s", payload, zone)
			return
		}
		c.pushEvent(zoneGainsEvent{zone: zone, kp: *g.Kp, ki: *g.Ki})
	case "deadband":
		if v, err := strconv.ParseFloat(payload, 64); err == nil {
			c.pushEvent(zoneDeadbandEvent{zone: zone, value: v})
		} else {
			logger.L().Errorf("Bad deadband for zone %s: %v", zone, err)
		}
	case "window_open":
		if open, err := parseBoolPayload(payload); err == nil {
			c.pushEvent(windowEvent{zone: zone, sensor: windowCmdKey, open: open})
		} else {
			logger.L().Errorf("Bad window state for zone %s: %v", zone, err)
		}
	case "preset/activate":
		c.pushEvent(presetActivateEvent{zone: zone, name: payload})
	case "preset/save":
		c.pushEvent(presetSaveEvent{zone: zone, name: payload})
	default:
		logger.L().Errorf("Unknown zone command `%v`", cmd)
	}
}

func (c *HubController) circuitCommandHandler(client mqtt.Client, message mqtt.Message) {
	circuit, cmd, ok := splitCommandTopic(message.Topic(), c.cfg.MQTTConfig.BaseTopic+"/circuit/")
	if !ok {
		return
	}
	payload := strings.TrimSpace(string(message.Payload()))
	logger.L().Infof("Got MQTT command for circuit %s: %v : %v", circuit, cmd, payload)

	switch cmd {
	case "setpoint":
		if v, err := strconv.ParseFloat(payload, 64); err == nil {
			c.pushEvent(circuitSetpointEvent{circuit: circuit, value: v})
		} else {
			logger.L().Errorf("Bad setpoint for circuit %s: %v", circuit, err)
		}
	case "mode":
		if mode, ok := ParseMode(payload); ok {
			c.pushEvent(circuitModeEvent{circuit: circuit, mode: mode})
		} else {
			logger.L().Errorf("Bad mode `%v` for circuit %s", payload, circuit)
		}
	case "preset":
		c.pushEvent(circuitPresetEvent{circuit: circuit, name: payload})
	default:
		logger.L().Errorf("Unknown circuit command `%v`", cmd)
	}
}

func (c *HubController) controlUpdateHandler(client mqtt.Client, message mqtt.Message) {
	topic := message.Topic()[strings.LastIndex(message.Topic(), "/")+1:]
	payload := strings.TrimSpace(string(message.Payload()))
	logger.L().Infof("Got MQTT control request: %v : %v", topic, payload)

	switch topic {
	case "enable":
		if on, err := parseBoolPayload(payload); err == nil {
			c.pushEvent(enableEvent{on: on})
		} else {
			logger.L().Errorf("Bad enable payload: %v", err)
		}
	case "log_level":
		// Log level is backed by an atomic, safe to set from here.
		if err := c.cfg.LogLevel.Set(payload); err != nil {
			logger.L().Errorf("Wrong log level `%v`: %v", payload, err)
			return
		}
		logger.SetLogLevel(c.cfg.LogLevel)
	}
}

// splitCommandTopic peels `<prefix><id>/set/<cmd>` apart.
func splitCommandTopic(topic string, prefix string) (id string, cmd string, ok bool) {
	rest, found := strings.CutPrefix(topic, prefix)
	if !found {
		return "", "", false
	}
	id, cmd, found = strings.Cut(rest, "/set/")
	if !found || id == "" || cmd == "" {
		return "", "", false
	}
	return id, cmd, true
}
