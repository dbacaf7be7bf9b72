// Service monitor is the shop monitoring daemon: it bridges broker
// parameters and GPIO pins, and runs the alarm rules once per tick.
package monitor

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/basement-tech/Monitoring-zimKnives/config"
	"github.com/basement-tech/Monitoring-zimKnives/lib/gpio"
	"github.com/basement-tech/Monitoring-zimKnives/lib/notify"
	"github.com/basement-tech/Monitoring-zimKnives/logger"
	"github.com/basement-tech/Monitoring-zimKnives/params"
	"github.com/basement-tech/Monitoring-zimKnives/pubsub"
	"github.com/basement-tech/Monitoring-zimKnives/pubsub/mqtt"
	"github.com/basement-tech/Monitoring-zimKnives/services"
)

// Service monitor
type Service struct {
	period  time.Duration
	metrics string

	registry   *params.Registry
	bridge     *pubsub.Bridge
	physical   *Physical
	engine     *Engine
	dispatcher *notify.Dispatcher
}

// ID of the service
func (self *Service) ID() string {
	return "monitor"
}

// Init builds the registry and connects it to the configured broker,
// GPIO driver and notification channel. Nothing is opened yet.
func (self *Service) Init(cfg *config.Config) error {
	driver, err := gpio.Open(cfg.GPIO.Driver, cfg.GPIO.Chip)
	if err != nil {
		return errors.Wrap(err, "gpio")
	}
	dispatcher, err := services.NewDispatcher(cfg)
	if err != nil {
		return err
	}
	newClient := func(h pubsub.Handler) pubsub.Client {
		return mqtt.NewClient(mqtt.Options{
			Broker:   cfg.MQTT.Broker,
			ClientID: cfg.MQTT.ClientID,
			User:     cfg.MQTT.User,
			Password: cfg.MQTT.Password,
			QoS:      cfg.MQTT.QoS,
		}, h)
	}
	if err := self.setup(cfg, driver, newClient, dispatcher); err != nil {
		driver.Close()
		return err
	}
	self.dispatcher = dispatcher
	return nil
}

func (self *Service) setup(cfg *config.Config, driver gpio.Driver, newClient func(pubsub.Handler) pubsub.Client, notifier Notifier) error {
	registry, err := NewParameters(cfg)
	if err != nil {
		return err
	}
	engine, err := NewEngine(registry, notifier, cfg)
	if err != nil {
		return err
	}
	self.period = cfg.Loop.Period.Duration
	self.metrics = cfg.Metrics.Listen
	self.registry = registry
	self.bridge = pubsub.NewBridge(registry)
	self.bridge.Attach(newClient(self.bridge))
	self.physical = NewPhysical(driver, registry)
	self.engine = engine
	return nil
}

// Run starts the connection and pins, then ticks until ctx is done.
func (self *Service) Run(ctx context.Context) error {
	if self.metrics != "" {
		go serveMetrics(ctx, self.metrics)
	}
	if err := self.start(); err != nil {
		self.physical.Cleanup()
		self.bridge.Close()
		return err
	}
	defer self.stop()

	ticker := time.NewTicker(self.period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logger.Info("Shutting down")
			return nil
		case <-ticker.C:
			self.tick()
		}
	}
}

func (self *Service) start() error {
	if err := self.bridge.Connect(); err != nil {
		// the loop keeps retrying through Check
		logger.Errorf("%v", err)
	}
	self.registry.PublishAll(self.bridge)
	if err := self.physical.Initialize(); err != nil {
		return errors.Wrap(err, "initialize pins")
	}
	self.registry.SubscribeAll(self.bridge)
	return nil
}

// tick is one pass of the main loop.
func (self *Service) tick() {
	self.registry.PublishAll(self.bridge)
	self.engine.ProcessStimuli()
	self.engine.ProcessOverrides()
	self.physical.Service()
	display(self.registry)
	self.engine.ProcessLimits()
	self.bridge.Check()
}

func (self *Service) stop() {
	self.engine.SecureFromAuto()
	self.engine.Stop()
	self.physical.Cleanup()
	self.bridge.Close()
	if self.dispatcher != nil {
		self.dispatcher.Wait()
	}
}
