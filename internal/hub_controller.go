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
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/mzclm-dev/mzclm/internal/config"
	"github.com/mzclm-dev/mzclm/internal/db"
	"github.com/mzclm-dev/mzclm/internal/logger"
	"github.com/mzclm-dev/mzclm/internal/safe_mqtt"
)

const (
	debounceDuration = 50 * time.Millisecond
	eventQueueSize   = 100
)

// HubController is the top of the hierarchy and the single writer of all
// engine state. MQTT handlers parse payloads into events; the Run loop
// consumes them, walks zones then circuits then the hub aggregate, and
// decides whether the boiler may fire.
type HubController struct {
	cfg   *config.Config
	mqtt  safe_mqtt.MqttClient
	pub   Publisher
	store *db.Store

	reg     *registry
	presets *presetStore

	events chan any

	enabled       bool
	boilerRaw     bool
	boilerTracker *onlineTracker // nil when no boiler status input is configured

	output   float64
	lastTick time.Time

	tel *telemetry
}

func NewHubController() *HubController {
	cfg := config.Get()

	mqttClient := safe_mqtt.InitMQTTClient(
		cfg.MQTTConfig.URL,
		"mzclm-"+uuid.New().String(),
		cfg.MQTTConfig.Username,
		cfg.MQTTConfig.Password,
	)

	c := newHubEngine(cfg, &mqttPublisher{mqtt: mqttClient}, db.OpenDatabase(cfg.DBFile), time.Now())
	c.mqtt = mqttClient
	c.setupMQTTSubscriptions()
	return c
}

// newHubEngine builds the engine without touching MQTT or the command
// line. The store may be nil.
func newHubEngine(cfg *config.Config, pub Publisher, store *db.Store, start time.Time) *HubController {
	c := &HubController{
		cfg:     cfg,
		pub:     pub,
		store:   store,
		reg:     newRegistry(),
		events:  make(chan any, eventQueueSize),
		enabled: true,
		tel:     newTelemetry(pub, cfg.MQTTConfig.BaseTopic+"/hub"),
	}

	c.presets = newPresetStore(cfg.Zones, store)
	c.initializeZones(start)
	c.initializeCircuits()

	if cfg.Boiler.OnlineTopic != "" {
		// The boiler is considered absent until it reports; the grace
		// window covers a restart race against its availability topic.
		c.boilerTracker = newOnlineTracker("Boiler", seconds(*cfg.Boiler.OfflineGrace),
			func(faulted bool) {
				c.tel.publishBool("boiler_fault", faulted)
				if !faulted {
					c.releaseFailsafe()
				}
			},
			c.runFailsafe,
		)
	}

	c.enabled = c.readValueWithDefault("enabled", "true") == "true"
	c.lastTick = start
	return c
}

func (c *HubController) initializeZones(start time.Time) {
	for name, zc := range c.cfg.Zones {
		zone := newZoneController(name, zc, c.pub, c.cfg.MQTTConfig.BaseTopic, c.store, start)
		zone.restoreState()
		c.reg.addZone(zone)
	}
}

func (c *HubController) initializeCircuits() {
	for name, cc := range c.cfg.Circuits {
		c.reg.addCircuit(newCircuitController(name, cc, c.reg, c.pub, c.cfg.MQTTConfig.BaseTopic))
	}
}

// Run drives the engine forever: events are folded in as they arrive, a
// short debounce timer coalesces bursts into one settle pass, and the
// ticker runs the periodic regulation step.
func (c *HubController) Run() {
	timer := time.NewTimer(debounceDuration)
	ticker := time.NewTicker(seconds(*c.cfg.TickInterval))
	defer ticker.Stop()

	c.lastTick = time.Now()

	for {
		select {
		case ev := <-c.events:
			c.handleEvent(ev, time.Now())
			c.resetTimer(timer)
		case <-timer.C:
			c.settle(time.Now())
		case <-ticker.C:
			c.controlTick(time.Now())
		}
	}
}

func (c *HubController) resetTimer(timer *time.Timer) {
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	timer.Reset(debounceDuration)
}

// handleEvent applies one event to the owning entity. Aggregation is
// deferred to the next settle or tick pass.
func (c *HubController) handleEvent(ev any, now time.Time) {
	switch e := ev.(type) {
	case readingEvent:
		z, ok := c.reg.zone(e.zone)
		if !ok {
			return
		}
		if e.ok {
			z.OnReading(e.value, e.at)
		} else {
			z.MarkSensorUnavailable(e.at)
		}
	case windowEvent:
		if z, ok := c.reg.zone(e.zone); ok {
			z.SetWindowState(e.sensor, e.open, now)
		}
	case zoneTargetEvent:
		if z, ok := c.reg.zone(e.zone); ok {
			z.SetTarget(e.value)
		}
	case zoneModeEvent:
		if z, ok := c.reg.zone(e.zone); ok {
			z.SetMode(e.mode)
		}
	case zoneGainsEvent:
		if z, ok := c.reg.zone(e.zone); ok {
			if err := z.SetGains(e.kp, e.ki); err != nil {
				logger.L().Errorf("Rejected gains for zone %s: %v", e.zone, err)
			}
		}
	case zoneDeadbandEvent:
		if z, ok := c.reg.zone(e.zone); ok {
			if err := z.SetDeadband(e.value); err != nil {
				logger.L().Errorf("Rejected deadband for zone %s: %v", e.zone, err)
			}
		}
	case presetActivateEvent:
		c.activatePreset(e.zone, e.name)
	case presetSaveEvent:
		c.savePreset(e.zone, e.name)
	case circuitSetpointEvent:
		if cc, ok := c.reg.circuit(e.circuit); ok {
			cc.SetSetpoint(e.value)
		}
	case circuitModeEvent:
		if cc, ok := c.reg.circuit(e.circuit); ok {
			cc.SetMode(e.mode)
		}
	case circuitPresetEvent:
		if cc, ok := c.reg.circuit(e.circuit); ok {
			for _, id := range cc.Members() {
				c.activatePreset(id, e.name)
			}
		}
	case boilerEvent:
		c.boilerRaw = e.online
		if c.boilerTracker != nil {
			c.boilerTracker.observe(e.online, now)
		}
	case enableEvent:
		c.setEnabled(e.on, now)
	default:
		logger.L().Errorf("Dropped an event of unexpected type %T", ev)
	}
}

func (c *HubController) activatePreset(zone string, name string) {
	z, ok := c.reg.zone(zone)
	if !ok {
		return
	}
	p, err := c.presets.Get(zone, name)
	if err != nil {
		logger.L().Errorf("Cannot activate preset: %v", err)
		return
	}
	z.ApplyPreset(name, p)
	logger.L().Infof("Zone %s activated preset %s", zone, name)
}

func (c *HubController) savePreset(zone string, name string) {
	z, ok := c.reg.zone(zone)
	if !ok {
		return
	}
	if err := c.presets.Save(zone, name, z.SnapshotPreset()); err != nil {
		logger.L().Errorf("Cannot save preset %s for zone %s: %v", name, zone, err)
		return
	}
	logger.L().Infof("Zone %s saved preset %s", zone, name)
}

func (c *HubController) setEnabled(on bool, now time.Time) {
	if on == c.enabled {
		return
	}
	c.enabled = on
	logger.L().Infof("Control is now %s", map[bool]string{true: "enabled", false: "disabled"}[on])
	c.tel.publishBool("enabled", on)
	c.writeValue("enabled", map[bool]string{true: "true", false: "false"}[on])
	if !on {
		// Drop every output right away rather than on the next tick.
		for _, id := range c.reg.zoneIDs() {
			if z, ok := c.reg.zone(id); ok {
				z.Tick(now, 0, false)
			}
		}
		c.settle(now)
	}
}

// settle is the cheap pass after a burst of events: member outputs have
// already moved, so circuits and the hub re-derive their aggregates
// without advancing any integral.
func (c *HubController) settle(now time.Time) {
	for _, id := range c.reg.circuitIDs() {
		if cc, ok := c.reg.circuit(id); ok {
			cc.Recompute(now)
		}
	}
	c.aggregate(now)
}

// controlTick is the periodic bottom-up pass: every zone regulates with a
// real dt, then circuits, then the hub. No layer sees a partially
// updated child.
func (c *HubController) controlTick(now time.Time) {
	dt := now.Sub(c.lastTick).Seconds()
	c.lastTick = now
	if dt <= 0 {
		return
	}

	if c.boilerTracker != nil {
		// Re-evaluate the grace window even when the topic stays silent.
		c.boilerTracker.observe(c.boilerRaw, now)
	}

	for _, id := range c.reg.zoneIDs() {
		if z, ok := c.reg.zone(id); ok {
			z.Tick(now, dt, c.enabled)
		}
	}

	for _, id := range c.reg.circuitIDs() {
		if cc, ok := c.reg.circuit(id); ok {
			cc.Recompute(now)
		}
	}

	c.aggregate(now)
}

// aggregate derives the hub observables: MAX over zone outputs, gated by
// the enable flag and boiler availability, and the OR of control faults.
func (c *HubController) aggregate(now time.Time) {
	maxOut := 0.0
	fault := false
	for _, id := range c.reg.zoneIDs() {
		z, ok := c.reg.zone(id)
		if !ok {
			continue
		}
		if z.Output() > maxOut {
			maxOut = z.Output()
		}
		fault = fault || z.ControlFault()
	}

	if !c.enabled {
		maxOut = 0
	}
	if c.boilerTracker != nil && c.boilerTracker.isFaulted() {
		maxOut = 0
	}

	c.output = maxOut
	c.tel.publishFloat("output", maxOut)
	c.tel.publishBool("control_fault", fault)
}

// runFailsafe reacts to the boiler fault latching: every circuit switch
// is energized and every TRV opened so residual heat keeps circulating
// instead of cooking the primary loop. Both stay held across subsequent
// ticks until the boiler recovers.
func (c *HubController) runFailsafe() {
	logger.L().Warn("Boiler is offline, energizing all circuits and opening all TRVs")
	now := time.Now()
	for _, id := range c.reg.circuitIDs() {
		if cc, ok := c.reg.circuit(id); ok {
			cc.EnergizeSwitches(now)
		}
	}
	for _, id := range c.reg.zoneIDs() {
		if z, ok := c.reg.zone(id); ok {
			z.OpenTRVs()
		}
	}
}

// releaseFailsafe ends the holds on the boiler-recovery edge; switches
// and valves resync with demand on the next pass.
func (c *HubController) releaseFailsafe() {
	logger.L().Info("Boiler is back, resuming demand-driven actuation")
	for _, id := range c.reg.circuitIDs() {
		if cc, ok := c.reg.circuit(id); ok {
			cc.ReleaseSwitches()
		}
	}
	for _, id := range c.reg.zoneIDs() {
		if z, ok := c.reg.zone(id); ok {
			z.ReleaseTRVs()
		}
	}
}

// RemoveZone detaches a zone from every circuit and purges its stored
// state, so nothing aggregates over or restores a dead id.
func (c *HubController) RemoveZone(id string) {
	c.reg.removeZone(id)
	if c.store != nil {
		if err := c.store.DeleteZone(context.Background(), id); err != nil {
			logger.L().Errorf("Failed to purge stored state for zone %s: %v", id, err)
		}
	}
	logger.L().Infof("Removed zone %s", id)
}

// RemoveCircuit drops a circuit from the registry; its member zones keep
// regulating and stay visible to the hub aggregate.
func (c *HubController) RemoveCircuit(id string) {
	c.reg.removeCircuit(id)
	logger.L().Infof("Removed circuit %s", id)
}

func (c *HubController) readValueWithDefault(name string, def string) string {
	if c.store == nil {
		return def
	}
	v, err := c.store.GetControllerValue(context.Background(), name)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			logger.L().Errorf("Failed to read stored value %s: %v", name, err)
		}
		return def
	}
	return v
}

func (c *HubController) writeValue(name string, value string) {
	if c.store == nil {
		return
	}
	if err := c.store.UpsertControllerValue(context.Background(), name, value); err != nil {
		logger.L().Errorf("Failed to store value %s: %v", name, err)
	}
}

func (c *HubController) Output() float64 { return c.output }

func (c *HubController) Enabled() bool { return c.enabled }

func (c *HubController) BoilerFault() bool {
	return c.boilerTracker != nil && c.boilerTracker.isFaulted()
}
