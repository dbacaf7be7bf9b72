package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/basement-tech/Monitoring-zimKnives/config"
	"github.com/basement-tech/Monitoring-zimKnives/lib/holdoff"
	"github.com/basement-tech/Monitoring-zimKnives/logger"
	"github.com/basement-tech/Monitoring-zimKnives/params"
	"github.com/basement-tech/Monitoring-zimKnives/util"
)

// Notifier is the outbound message channel. Calls must not block.
type Notifier interface {
	Alarm(body string)
	Notify(body string)
}

// gate is a "sent" flag held down by a holdoff timer. The generation
// stops a timer that fired late from clearing a newer arming.
type gate struct {
	name     string
	interval time.Duration
	set      bool
	gen      uint64
	timer    *holdoff.Timer
}

// Engine runs the stimulus-response rules. Rules run on the main loop;
// holdoff expiries arrive on timer goroutines and only clear flags.
type Engine struct {
	registry *params.Registry
	notifier Notifier
	location string
	limits   []*Limit

	temp, humidity, gasco, gaspr *params.Parameter
	motion, keysw, oAuto, oLight *params.Parameter
	auto, light, ovrled          *params.Parameter
	panicBut                     *params.Parameter

	mu          sync.Mutex
	motionEvent gate
	envSent     gate
	limitSent   gate
}

func NewEngine(registry *params.Registry, notifier Notifier, cfg *config.Config) (*Engine, error) {
	e := &Engine{
		registry:    registry,
		notifier:    notifier,
		location:    cfg.Location,
		limits:      NewLimits(cfg.Limits),
		motionEvent: gate{name: "motion event", interval: cfg.Holdoff.Motion.Duration},
		envSent:     gate{name: "environment sent", interval: cfg.Holdoff.Environment.Duration},
		limitSent:   gate{name: "limit sent", interval: cfg.Holdoff.Limit.Duration},
	}
	for label, dst := range map[string]**params.Parameter{
		Temp:     &e.temp,
		Humidity: &e.humidity,
		GasCO:    &e.gasco,
		GasPR:    &e.gaspr,
		Motion:   &e.motion,
		Keysw:    &e.keysw,
		OAuto:    &e.oAuto,
		OLight:   &e.oLight,
		Auto:     &e.auto,
		Light:    &e.light,
		Ovrled:   &e.ovrled,
	} {
		p := registry.ByLabel(label)
		if p == nil {
			return nil, errors.Errorf("parameter %s missing", label)
		}
		if label != Temp && label != Humidity && label != GasCO && label != GasPR && p.Kind() != params.KindBool {
			return nil, errors.Errorf("parameter %s must be boolean", label)
		}
		*dst = p
	}
	e.panicBut = registry.ByLabel(PanicBut)
	return e, nil
}

// arm holds g set until its interval expires. Called with e.mu held.
func (e *Engine) arm(g *gate) {
	g.set = true
	g.gen++
	gen := g.gen
	g.timer = holdoff.Start(g.interval, func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		if g.gen == gen {
			logger.Debugf("Timer resetting %s", g.name)
			g.set = false
		}
	})
	logger.Debugf("Holding off %s for %s", g.name, util.FriendlyDuration(g.timer.Interval()))
}

// ProcessStimuli runs the stimulus rules in order.
func (e *Engine) ProcessStimuli() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.motionDetected()
	e.environment()
	e.autoOnOff()
	e.setOvrled()
	e.panicButton()
}

func (e *Engine) motionDetected() {
	logger.Debug("Processing motion")
	if !e.auto.Bool() {
		logger.Debug("not auto mode ... doing nothing")
		return
	}
	if e.motionEvent.set {
		return
	}
	if e.motion.Bool() {
		e.lightItUp(false)
		e.notifier.Alarm("Motion detected at " + e.location)
		e.arm(&e.motionEvent)
	} else {
		e.lightItUp(true)
	}
}

// lightItUp commands the light on, or off on reset unless the remote
// override holds it on.
func (e *Engine) lightItUp(reset bool) {
	if !reset {
		e.light.Set(params.Bool(true))
		return
	}
	if e.oLight.Bool() {
		logger.Debug("local reset of light requested ... ignored")
		return
	}
	e.light.Set(params.Bool(false))
}

func (e *Engine) environment() {
	if e.envSent.set {
		return
	}
	message := fmt.Sprintf("T:%s H:%s G_CO:%s G_PR:%s",
		e.temp.Value(), e.humidity.Value(), e.gasco.Value(), e.gaspr.Value())
	logger.Debugf("Text message: %s", message)
	e.notifier.Notify(message)
	e.arm(&e.envSent)
}

// autoOnOff is a three-way switch between the key switch and the remote
// override: whichever reports last wins.
func (e *Engine) autoOnOff() {
	for _, in := range []*params.Parameter{e.keysw, e.oAuto} {
		v, pending := in.ConsumeEvent()
		if !pending {
			continue
		}
		on := v == params.Bool(true)
		if on {
			logger.Infof("%s commanded auto on ... doing it", in.Label)
		} else {
			logger.Infof("%s commanded auto off ... doing it", in.Label)
		}
		e.auto.Set(params.Bool(on))
		if !on {
			e.secureFromAuto()
		}
	}
}

func (e *Engine) setOvrled() {
	e.ovrled.Set(params.Bool(e.keysw.Bool() != e.auto.Bool()))
}

func (e *Engine) panicButton() {
	if e.panicBut == nil {
		return
	}
	v, pending := e.panicBut.ConsumeEvent()
	if pending && v == params.Bool(true) {
		e.notifier.Alarm("Panic button pressed at " + e.location)
	}
}

// ProcessOverrides applies a fresh light override, on or off.
func (e *Engine) ProcessOverrides() {
	e.mu.Lock()
	defer e.mu.Unlock()
	v, pending := e.oLight.ConsumeEvent()
	if !pending {
		return
	}
	if v == params.Bool(true) {
		logger.Info("override commanded light on ... doing it")
	} else {
		logger.Info("override commanded light off ... doing it")
	}
	e.light.Set(v)
}

// ProcessLimits sends one combined alarm for every check that trips,
// at most once per limit holdoff.
func (e *Engine) ProcessLimits() {
	e.mu.Lock()
	defer e.mu.Unlock()
	logger.Debug("Processing limits ...")

	message := "LIMIT"
	for _, l := range e.limits {
		p := e.registry.ByLabel(l.Parm)
		if p == nil {
			logger.Infof("Spurious label in limits ... ignored; label = %s", l.Parm)
			continue
		}
		value, ok := params.Number(p.Value())
		if !ok {
			logger.Infof("Limit %s: %s is not numeric ... ignored", l.Name, l.Parm)
			continue
		}
		hit, err := l.Match(value)
		if err != nil {
			logger.Infof("Bad limit check ... ignored: %v", err)
			continue
		}
		if hit {
			logger.Infof("Limit message: %s (parm:%s limit:%v value: %v %s)",
				l.Message, l.Parm, l.Limit, value, p.Units)
			message += "\n" + l.Message
		}
	}
	if message == "LIMIT" || e.limitSent.set {
		return
	}
	logger.Debugf("Text message: %s", message)
	e.notifier.Alarm(message)
	e.arm(&e.limitSent)
}

// SecureFromAuto ends any motion event in progress.
func (e *Engine) SecureFromAuto() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.secureFromAuto()
}

func (e *Engine) secureFromAuto() {
	e.motionEvent.set = false
	e.motionEvent.gen++
	e.motionEvent.timer.Cancel()
}

// Stop disarms every holdoff timer.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.secureFromAuto()
	e.envSent.timer.Cancel()
	e.limitSent.timer.Cancel()
}

// MotionEventActive reports whether a motion event is being held off.
func (e *Engine) MotionEventActive() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.motionEvent.set
}

func (e *Engine) EnvironmentSent() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.envSent.set
}

func (e *Engine) LimitSent() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.limitSent.set
}
