// Service to watch the internet connection by pinging hosts, rebooting the
// machine when it stays down. A breadcrumb left before the reboot is
// reported once the connection is back.
package pingtest

import (
	"context"
	"net"
	"os"
	"os/exec"
	"time"

	"github.com/pkg/errors"
	fastping "github.com/tatsushid/go-fastping"

	"github.com/basement-tech/Monitoring-zimKnives/config"
	"github.com/basement-tech/Monitoring-zimKnives/lib/notify"
	"github.com/basement-tech/Monitoring-zimKnives/logger"
	"github.com/basement-tech/Monitoring-zimKnives/services"
	"github.com/basement-tech/Monitoring-zimKnives/util"
)

// RebootDelay is the pause between writing the breadcrumb and rebooting.
var RebootDelay = 5 * time.Second

const maxRTT = 5 * time.Second

type Notifier interface {
	Notify(body string)
}

// Pinger reports whether host answered.
type Pinger interface {
	Ping(host string) error
}

// ICMP pings with fastping. Needs raw socket privileges.
type ICMP struct{}

func (ICMP) Ping(host string) error {
	addr, err := net.ResolveIPAddr("ip4:icmp", host)
	if err != nil {
		return errors.Wrapf(err, "resolve %s", host)
	}
	p := fastping.NewPinger()
	p.AddIPAddr(addr)
	p.MaxRTT = maxRTT
	replied := false
	p.OnRecv = func(*net.IPAddr, time.Duration) {
		replied = true
	}
	if err := p.Run(); err != nil {
		return errors.Wrapf(err, "ping %s", host)
	}
	if !replied {
		return errors.Errorf("%s: no reply", host)
	}
	return nil
}

func shell(ctx context.Context, command string) error {
	out, err := exec.CommandContext(ctx, "/bin/sh", "-c", command).CombinedOutput()
	return errors.Wrapf(err, "%s: %s", command, out)
}

// Service pingtest
type Service struct {
	conf       config.PingtestConf
	notifier   Notifier
	dispatcher *notify.Dispatcher
	pinger     Pinger
	run        func(ctx context.Context, command string) error
}

// ID of the service
func (self *Service) ID() string {
	return "pingtest"
}

func (self *Service) Init(cfg *config.Config) error {
	if len(cfg.Pingtest.Hosts) == 0 {
		return errors.New("no hosts to ping")
	}
	dispatcher, err := services.NewDispatcher(cfg)
	if err != nil {
		return err
	}
	self.conf = cfg.Pingtest
	self.conf.Breadcrumb = util.ExpandPath(self.conf.Breadcrumb)
	self.notifier = dispatcher
	self.dispatcher = dispatcher
	self.pinger = ICMP{}
	self.run = shell
	return nil
}

// Run pings every interval until ctx is done or the reboot command runs.
func (self *Service) Run(ctx context.Context) error {
	if self.dispatcher != nil {
		defer self.dispatcher.Wait()
	}
	logger.Info("Starting up pingtest ...")
	self.checkBreadcrumb()

	left := self.conf.Fails
	for {
		if self.up() {
			left = self.conf.Fails
		} else {
			left--
			logger.Warnf("Internet is down! tries left = %d", left)
		}
		if left <= 0 {
			if self.conf.Reboot {
				return self.reboot(ctx)
			}
			logger.Error("Internet is down, reboot disabled")
			left = self.conf.Fails
		}

		select {
		case <-ctx.Done():
			return nil
		case <-time.After(self.conf.Interval.Duration):
		}
	}
}

// up is true if any host answers.
func (self *Service) up() bool {
	for _, host := range self.conf.Hosts {
		err := self.pinger.Ping(host)
		if err == nil {
			logger.Debugf("%s is up!", host)
			return true
		}
		logger.Debugf("%v", err)
	}
	return false
}

func (self *Service) checkBreadcrumb() {
	if _, err := os.Stat(self.conf.Breadcrumb); err != nil {
		return
	}
	logger.Debug("breadcrumb detected ... removing it, sending notif")
	if err := os.Remove(self.conf.Breadcrumb); err != nil {
		logger.Errorf("Removing breadcrumb: %v", err)
	}
	self.notifier.Notify("System was rebooted because of internet outage")
}

func (self *Service) reboot(ctx context.Context) error {
	logger.Errorf("system will be rebooted in %s", util.FriendlyDuration(RebootDelay))
	crumb := time.Now().Format(time.UnixDate) + "\n"
	if err := os.WriteFile(self.conf.Breadcrumb, []byte(crumb), 0o644); err != nil {
		logger.Errorf("Writing breadcrumb: %v", err)
	}
	select {
	case <-ctx.Done():
		return nil
	case <-time.After(RebootDelay):
	}
	return self.run(ctx, self.conf.Command)
}
