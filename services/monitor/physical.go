package monitor

import (
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/pkg/errors"

	"github.com/basement-tech/Monitoring-zimKnives/lib/gpio"
	"github.com/basement-tech/Monitoring-zimKnives/logger"
	"github.com/basement-tech/Monitoring-zimKnives/params"
)

var lightOnSeconds = metrics.NewSummary("zkmonitor_light_on_seconds")

// Physical moves values between pin-bound parameters and the pins, and
// runs acquirers for locally sourced parameters. It owns the driver.
type Physical struct {
	driver   gpio.Driver
	registry *params.Registry

	lightOn time.Time
}

func NewPhysical(driver gpio.Driver, registry *params.Registry) *Physical {
	return &Physical{driver: driver, registry: registry}
}

// Initialize configures every bound pin. Outputs are driven to their
// parameter's value; interrupt inputs get an edge handler.
func (ph *Physical) Initialize() error {
	for _, p := range ph.registry.Parameters() {
		p := p
		switch {
		case p.IO == params.Out:
			if err := ph.driver.Output(p.Pin, p.Bool()); err != nil {
				return errors.Wrapf(err, "%s output", p.Label)
			}
		case p.IO == params.In && p.Interrupt:
			if err := ph.driver.OnEdge(p.Pin, func() { ph.edge(p) }); err != nil {
				return errors.Wrapf(err, "%s edge", p.Label)
			}
			ph.edge(p)
		case p.IO == params.In:
			if err := ph.driver.Input(p.Pin); err != nil {
				return errors.Wrapf(err, "%s input", p.Label)
			}
		default:
			continue
		}
		logger.Debugf("Configured %s on pin %d", p.Label, p.Pin)
	}
	return nil
}

// edge runs from the driver's goroutine. The edge itself is not trusted:
// the interrupt double-fires, so the level is read back and a repeat of
// the stored level is noise.
func (ph *Physical) edge(p *params.Parameter) {
	lvl, err := ph.driver.Read(p.Pin)
	if err != nil {
		logger.Errorf("Reading %s: %v", p.Label, err)
		return
	}
	changed, err := p.Transition(params.Bool(lvl))
	if err != nil {
		logger.Errorf("%s: %v", p.Label, err)
		return
	}
	if !changed {
		logger.Debugf("%s: same direction trigger ... ignored", p.Label)
		return
	}
	if lvl {
		logger.Infof("%s: rising edge", p.Label)
	} else {
		logger.Infof("%s: falling edge", p.Label)
	}
}

// Service runs each parameter's physical action once.
func (ph *Physical) Service() {
	for _, p := range ph.registry.Parameters() {
		switch {
		case p.IO == params.Out:
			ph.write(p)
		case p.IO == params.In && !p.Interrupt:
			ph.read(p)
		case p.Acquire != nil:
			ph.acquire(p)
		}
	}
}

func (ph *Physical) write(p *params.Parameter) {
	on := p.Bool()
	if err := ph.driver.Write(p.Pin, on); err != nil {
		logger.Errorf("Writing %s: %v", p.Label, err)
		return
	}
	if p.Label != Light {
		return
	}
	switch {
	case on && ph.lightOn.IsZero():
		ph.lightOn = time.Now()
	case !on && !ph.lightOn.IsZero():
		lightOnSeconds.Update(time.Since(ph.lightOn).Seconds())
		ph.lightOn = time.Time{}
	}
}

func (ph *Physical) read(p *params.Parameter) {
	lvl, err := ph.driver.Read(p.Pin)
	if err != nil {
		logger.Errorf("Reading %s: %v", p.Label, err)
		return
	}
	changed, err := p.Change(params.Bool(lvl))
	if err != nil {
		logger.Errorf("%s: %v", p.Label, err)
		return
	}
	if changed {
		logger.Infof("%s changed to %v", p.Label, lvl)
	}
}

func (ph *Physical) acquire(p *params.Parameter) {
	v, err := p.Acquire()
	if err != nil {
		logger.Debugf("Acquiring %s: %v", p.Label, err)
		return
	}
	if err := p.Update(v); err != nil {
		logger.Errorf("%s: %v", p.Label, err)
	}
}

// Cleanup releases the pins.
func (ph *Physical) Cleanup() {
	if err := ph.driver.Close(); err != nil {
		logger.Errorf("Releasing pins: %v", err)
	}
}
