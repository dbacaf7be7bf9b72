package monitor

import (
	"github.com/basement-tech/Monitoring-zimKnives/config"
	"github.com/basement-tech/Monitoring-zimKnives/params"
)

// Parameter labels. Each is published or subscribed on <namespace>/<label>.
const (
	Temp     = "temp"
	Humidity = "humidity"
	GasCO    = "gasco"
	GasPR    = "gaspr"
	OLight   = "o_light"
	OAuto    = "o_auto"
	Motion   = "motion"
	PanicBut = "panicbut"
	Keysw    = "keysw"
	Auto     = "auto"
	Light    = "light"
	Ovrled   = "ovrled"
	Loadavg  = "loadavg"
	UPS      = "ups"
)

// NewParameters builds the registry for this installation: remote
// readings and overrides from the broker, local pins and sources.
func NewParameters(cfg *config.Config) (*params.Registry, error) {
	remote := func(label, units string) *params.Parameter {
		p := params.New(label, params.Float(0), units, params.Subscribe, cfg.Topic(label))
		p.Structured = true
		return p
	}
	local := func(label string) *params.Parameter {
		return params.New(label, params.Bool(false), "t/f", params.Publish, cfg.Topic(label))
	}
	bind := func(p *params.Parameter, pin *int, io params.IO) *params.Parameter {
		if pin != nil {
			p.BindPin(*pin, io)
		}
		return p
	}

	motion := bind(local(Motion), cfg.GPIO.Motion, params.In)
	motion.Interrupt = true

	parms := []*params.Parameter{
		remote(Temp, "deg C"),
		remote(Humidity, "%"),
		remote(GasCO, "units"),
		remote(GasPR, "units"),
		params.New(OLight, params.Bool(false), "t/f", params.Subscribe, cfg.Topic(OLight)),
		params.New(OAuto, params.Bool(false), "t/f", params.Subscribe, cfg.Topic(OAuto)),
		motion,
		bind(local(Keysw), cfg.GPIO.Keysw, params.In),
		local(Auto),
		bind(local(Light), cfg.GPIO.Light, params.Out),
		bind(local(Ovrled), cfg.GPIO.Ovrled, params.Out),
	}
	if cfg.GPIO.Panic != nil {
		parms = append(parms, bind(local(PanicBut), cfg.GPIO.Panic, params.In))
	}
	if cfg.Sources.Loadavg {
		p := params.New(Loadavg, params.Float(0), "", params.Publish, cfg.Topic(Loadavg))
		p.Acquire = readLoadavg
		parms = append(parms, p)
	}
	if cfg.Sources.UPS != "" {
		p := params.New(UPS, params.Text(""), "", params.Publish, cfg.Topic(UPS))
		p.Acquire = upsStatus(cfg.Sources.UPS)
		parms = append(parms, p)
	}
	return params.NewRegistry(parms...)
}
