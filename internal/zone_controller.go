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

	"github.com/pkg/errors"

	"github.com/mzclm-dev/mzclm/internal/config"
	"github.com/mzclm-dev/mzclm/internal/db"
	"github.com/mzclm-dev/mzclm/internal/logger"
	"github.com/mzclm-dev/mzclm/internal/regulator"
)

// ZoneState is the regulation state machine position.
type ZoneState string

const (
	StateIdle         ZoneState = "idle"
	StateRegulating   ZoneState = "regulating"
	StateWindowPaused ZoneState = "window_paused"
	StateFaulted      ZoneState = "faulted"
)

// windowCmdKey tracks the direct window_open command next to the
// configured window sensors.
const windowCmdKey = "(command)"

// ZoneController owns one zone: its regulator, sensor gate, window
// suspension and fault flags. All methods run on the hub loop goroutine;
// nothing here needs a lock.
type ZoneController struct {
	name string
	cfg  *config.ZoneConfig

	kind regulator.Kind
	reg  regulator.Regulator
	pid  *regulator.PID        // non-nil iff kind is PID
	hys  *regulator.Hysteresis // non-nil iff kind is hysteresis

	sensor       *SensorController
	window       *windowTracker
	windowStates map[string]bool

	mode         Mode
	activePreset string
	state        ZoneState
	controlFault bool
	output       float64

	trvs    []HeatActuator
	trvOn   bool
	trvHold bool

	tel   *telemetry
	store *db.Store // optional; persistence failures never fault the zone
}

func newZoneController(name string, cfg *config.ZoneConfig, pub Publisher, baseTopic string, store *db.Store, start time.Time) *ZoneController {
	z := &ZoneController{
		name:         name,
		cfg:          cfg,
		kind:         regulator.Kind(cfg.Regulator),
		windowStates: make(map[string]bool),
		mode:         ModeHeat,
		state:        StateIdle,
		window:       newWindowTracker(seconds(*cfg.WindowWarmup)),
		tel:          newTelemetry(pub, baseTopic+"/zone/"+name),
		store:        store,
	}

	if z.kind == regulator.KindPID {
		z.pid = regulator.NewPID(*cfg.Kp, *cfg.Ki, *cfg.IMax, *cfg.Target)
		z.reg = z.pid
	} else {
		z.hys = regulator.NewHysteresis(*cfg.Deadband, *cfg.Target)
		z.reg = z.hys
	}

	z.sensor = newSensorController(name+" temperature", cfg.Sensor, seconds(*cfg.StaleAfter), start, func(faulted bool) {
		z.tel.publishBool("sensor_fault", faulted)
	})

	for _, topic := range cfg.TRVs {
		z.trvs = append(z.trvs, &trvActuator{pub: pub, topic: topic})
	}

	return z
}

func (z *ZoneController) Name() string { return z.name }

func (z *ZoneController) Kind() regulator.Kind { return z.kind }

func (z *ZoneController) Output() float64 { return z.output }

func (z *ZoneController) State() ZoneState { return z.state }

func (z *ZoneController) Mode() Mode { return z.mode }

func (z *ZoneController) Target() float64 { return z.reg.Target() }

func (z *ZoneController) ActivePreset() string { return z.activePreset }

func (z *ZoneController) ControlFault() bool { return z.controlFault }

func (z *ZoneController) SensorFault() bool { return z.sensor.fault }

// OnReading feeds a validated temperature sample through the sensor gate.
func (z *ZoneController) OnReading(value float64, at time.Time) {
	z.sensor.onReading(value, at)
}

// MarkSensorUnavailable notes that the zone's sensor reported invalid.
func (z *ZoneController) MarkSensorUnavailable(at time.Time) {
	z.sensor.markUnavailable(at)
}

func (z *ZoneController) SetTarget(value float64) float64 {
	z.reg.SetTarget(value)
	z.tel.publishFloat("target", value)
	z.persistState()
	return z.output
}

func (z *ZoneController) SetMode(mode Mode) float64 {
	if mode == z.mode {
		return z.output
	}
	z.mode = mode
	z.tel.publish("mode", string(mode))
	if mode == ModeOff {
		// Off bypasses pause logic: output 0 now, integral reset.
		z.reg.Reset()
		z.state = StateIdle
		z.setOutput(0)
		z.publishState()
	}
	z.persistState()
	return z.output
}

func (z *ZoneController) SetGains(kp, ki float64) error {
	if z.pid == nil {
		return errors.Wrapf(ErrConfigMismatch, "zone %s has no gains", z.name)
	}
	z.pid.SetGains(kp, ki)
	return nil
}

func (z *ZoneController) SetDeadband(value float64) error {
	if z.hys == nil {
		return errors.Wrapf(ErrConfigMismatch, "zone %s has no deadband", z.name)
	}
	z.hys.SetDeadband(value)
	return nil
}

// SetWindowState records one window sensor; the zone is "open" when any
// sensor is. Opening suspends output immediately, ahead of the next tick.
func (z *ZoneController) SetWindowState(sensor string, open bool, now time.Time) float64 {
	z.windowStates[sensor] = open

	anyOpen := false
	for _, o := range z.windowStates {
		anyOpen = anyOpen || o
	}

	if z.window.setOpen(anyOpen, now) {
		logger.L().Infof("Zone %s window %s", z.name, map[bool]string{true: "opened", false: "closed"}[anyOpen])
		z.tel.publishBool("window_open", anyOpen)
		if anyOpen && z.mode == ModeHeat {
			z.state = StateWindowPaused
			z.setOutput(0)
			z.publishState()
		}
	}
	return z.output
}

// ApplyPreset swaps configuration atomically: target, matching gains or
// deadband, and mode. Runtime state (integral, window, faults) is not
// touched.
func (z *ZoneController) ApplyPreset(name string, p Preset) float64 {
	z.reg.SetTarget(p.Target)
	z.tel.publishFloat("target", p.Target)

	if z.pid != nil && p.Kp != nil && p.Ki != nil {
		z.pid.SetGains(*p.Kp, *p.Ki)
	}
	if z.hys != nil && p.Deadband != nil {
		z.hys.SetDeadband(*p.Deadband)
	}

	z.activePreset = name
	z.tel.publish("preset", name)

	if p.Mode != "" && p.Mode != z.mode {
		z.SetMode(p.Mode)
	} else {
		z.persistState()
	}
	return z.output
}

// SnapshotPreset captures the zone's current live configuration.
func (z *ZoneController) SnapshotPreset() Preset {
	p := Preset{Target: z.reg.Target(), Mode: z.mode}
	if z.pid != nil {
		kp, ki := z.pid.Gains()
		p.Kp, p.Ki = &kp, &ki
	}
	if z.hys != nil {
		d := z.hys.Deadband()
		p.Deadband = &d
	}
	return p
}

// Tick runs one regulation step: gate the sensor, walk the state machine,
// update the output. enabled=false is the global pause: output forced to 0
// with the integral frozen.
func (z *ZoneController) Tick(now time.Time, dt float64, enabled bool) float64 {
	sensorFault := z.sensor.tick(now)

	if z.mode == ModeOff {
		// Forced off in SetMode; nothing to regulate.
		return z.output
	}

	if sensorFault {
		z.state = StateFaulted
		z.setOutput(0)
		z.publishState()
		return z.output
	}

	cur, ok := z.sensor.current()
	if !ok {
		// No reading has ever arrived; stay idle.
		z.state = StateIdle
		z.publishState()
		return z.output
	}

	if !z.window.shouldHeat(now) {
		z.state = StateWindowPaused
		z.setOutput(0)
		// Error keeps flowing to telemetry while paused.
		if z.pid != nil {
			kp, _ := z.pid.Gains()
			z.tel.publishFloat("p_term", kp*(z.reg.Target()-cur))
		}
		z.publishState()
		return z.output
	}

	if !enabled {
		z.state = StateIdle
		z.setOutput(0)
		z.publishState()
		return z.output
	}

	out := z.reg.Update(cur, dt)
	if !isFinite(out) || out < 0 || out > 1 {
		// Recovered locally: force 0 and retry on the next tick.
		if !z.controlFault {
			logger.L().Errorf("Zone %s computed an invalid output %v, forcing 0", z.name, out)
			z.controlFault = true
			z.tel.publishBool("control_fault", true)
		}
		z.setOutput(0)
		z.publishState()
		return z.output
	}

	if z.controlFault {
		logger.L().Infof("Zone %s recovered from control fault", z.name)
		z.controlFault = false
		z.tel.publishBool("control_fault", false)
	}

	z.state = StateRegulating
	z.setOutput(out)
	if z.pid != nil {
		z.tel.publishFloat("p_term", z.pid.PTerm())
		z.tel.publishFloat("i_term", z.pid.ITerm())
	}
	z.publishState()
	return z.output
}

func (z *ZoneController) setOutput(v float64) {
	z.output = v
	z.tel.publishFloat("output", v)
	z.operateTRVs()
}

// operateTRVs drives the valves on output edges. While a window is open,
// or while a failsafe holds the valves, they are left alone.
func (z *ZoneController) operateTRVs() {
	if len(z.trvs) == 0 || z.trvHold || z.window.isOpen() {
		return
	}
	want := z.output > 0
	if want == z.trvOn {
		return
	}
	z.trvOn = want
	for _, trv := range z.trvs {
		trv.SetHeat(want)
	}
	z.tel.publishBool("trv", want)
}

// OpenTRVs forces every valve open and holds it there, used by the
// boiler-offline failsafe. Demand edges do not move the valves again
// until ReleaseTRVs.
func (z *ZoneController) OpenTRVs() {
	z.trvOn = true
	z.trvHold = true
	for _, trv := range z.trvs {
		trv.SetHeat(true)
	}
	if len(z.trvs) > 0 {
		z.tel.publishBool("trv", true)
	}
}

// ReleaseTRVs ends the forced-open hold; the valves resync with the
// zone's output on its next evaluation.
func (z *ZoneController) ReleaseTRVs() {
	z.trvHold = false
}

func (z *ZoneController) publishState() {
	z.tel.publish("state", string(z.state))
}

func (z *ZoneController) persistState() {
	if z.store == nil {
		return
	}
	row := db.ZoneStateRow{Zone: z.name, Target: z.reg.Target(), Mode: string(z.mode)}
	if z.activePreset != "" {
		preset := z.activePreset
		row.Preset = &preset
	}
	if err := z.store.UpsertZoneState(context.Background(), row); err != nil {
		logger.L().Errorf("Failed to persist state for zone %s: %v", z.name, err)
	}
}

func (z *ZoneController) restoreState() {
	if z.store == nil {
		return
	}
	row, err := z.store.GetZoneState(context.Background(), z.name)
	if err != nil {
		if !errors.Is(err, db.ErrNotFound) {
			logger.L().Errorf("Failed to load state for zone %s: %v", z.name, err)
		}
		return
	}
	logger.L().Debugf("Loaded previous state from DB for zone %v: %v", z.name, row.Target)
	z.reg.SetTarget(row.Target)
	if mode, ok := ParseMode(row.Mode); ok {
		z.mode = mode
	}
	if row.Preset != nil {
		z.activePreset = *row.Preset
	}
}

func seconds(v float64) time.Duration {
	return time.Duration(v * float64(time.Second))
}
