// Package config loads the daemon's YAML configuration.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/basement-tech/Monitoring-zimKnives/util"
)

// Duration accepts "15m", "12h", "1d" or a bare number of seconds.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	s = strings.TrimSpace(s)
	if secs, err := strconv.ParseFloat(s, 64); err == nil {
		d.Duration = time.Duration(secs * float64(time.Second))
		return nil
	}
	if v, err := util.ParseDuration(s); err == nil {
		d.Duration = v
		return nil
	}
	v, err := time.ParseDuration(s)
	if err != nil {
		return errors.Errorf("invalid duration: %q", s)
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalYAML() (interface{}, error) {
	return d.Duration.String(), nil
}

type LoopConf struct {
	Period Duration `yaml:"period"`
}

type MQTTConf struct {
	Broker    string `yaml:"broker" validate:"required"`
	ClientID  string `yaml:"client_id"`
	User      string `yaml:"user"`
	Password  string `yaml:"password"`
	Namespace string `yaml:"namespace"`
	QoS       byte   `yaml:"qos" validate:"lte=2"`
}

// GPIOConf pins are BCM line offsets; a nil pin is not fitted.
type GPIOConf struct {
	Driver string `yaml:"driver" validate:"omitempty,oneof=cdev rpio mock"`
	Chip   string `yaml:"chip"`
	Motion *int   `yaml:"motion" validate:"omitempty,gte=0"`
	Light  *int   `yaml:"light" validate:"omitempty,gte=0"`
	Keysw  *int   `yaml:"keysw" validate:"omitempty,gte=0"`
	Ovrled *int   `yaml:"ovrled" validate:"omitempty,gte=0"`
	Panic  *int   `yaml:"panic" validate:"omitempty,gte=0"`
}

type HoldoffConf struct {
	Motion      Duration `yaml:"motion"`
	Environment Duration `yaml:"environment"`
	Limit       Duration `yaml:"limit"`
}

// LimitConf is one threshold check. Sense is "high" or "low"; When, if
// set, is an expression over value and limit that replaces the sense.
type LimitConf struct {
	Name    string  `yaml:"name"`
	Parm    string  `yaml:"parm" validate:"required"`
	Limit   float64 `yaml:"limit"`
	Sense   string  `yaml:"sense"`
	Message string  `yaml:"message" validate:"required"`
	When    string  `yaml:"when"`
}

type NotifyConf struct {
	Alarm         []string `yaml:"alarm" validate:"dive,required"`
	Notifications []string `yaml:"notifications" validate:"dive,required"`
	Targets       []string `yaml:"targets" validate:"dive,oneof=telegram pushbullet mastodon sms"`
}

type EmailConf struct {
	Method  string `yaml:"method" validate:"omitempty,oneof=mail smtp mailgun"`
	Command string `yaml:"command"`
	Server  string `yaml:"server" validate:"required_if=Method smtp"`
	From    string `yaml:"from"`
	Mailgun struct {
		Domain string `yaml:"domain"`
		APIKey string `yaml:"api_key"`
	} `yaml:"mailgun"`
}

type TelegramConf struct {
	Token  string `yaml:"token"`
	ChatID int64  `yaml:"chat_id"`
}

type PushbulletConf struct {
	Token string `yaml:"token"`
}

type MastodonConf struct {
	Server       string `yaml:"server"`
	ClientID     string `yaml:"client_id"`
	ClientSecret string `yaml:"client_secret"`
	AccessToken  string `yaml:"access_token"`
}

type SMSConf struct {
	Device    string `yaml:"device"`
	Telephone string `yaml:"telephone"`
}

// SourcesConf enables locally acquired parameters. UPS is the apcupsd
// network address, e.g. localhost:3551.
type SourcesConf struct {
	Loadavg bool   `yaml:"loadavg"`
	UPS     string `yaml:"ups"`
}

type MetricsConf struct {
	Listen string `yaml:"listen"`
}

type LoggingConf struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	File  string `yaml:"file"`
}

type PingtestConf struct {
	Hosts      []string `yaml:"hosts"`
	Fails      int      `yaml:"fails" validate:"gte=0"`
	Interval   Duration `yaml:"interval"`
	Reboot     bool     `yaml:"reboot"`
	Command    string   `yaml:"command"`
	Breadcrumb string   `yaml:"breadcrumb"`
}

// Config is the top level configuration.
type Config struct {
	Location   string         `yaml:"location" validate:"required"`
	Loop       LoopConf       `yaml:"loop"`
	MQTT       MQTTConf       `yaml:"mqtt"`
	GPIO       GPIOConf       `yaml:"gpio"`
	Holdoff    HoldoffConf    `yaml:"holdoff"`
	Limits     []LimitConf    `yaml:"limits" validate:"dive"`
	Notify     NotifyConf     `yaml:"notify"`
	Email      EmailConf      `yaml:"email"`
	Telegram   TelegramConf   `yaml:"telegram"`
	Pushbullet PushbulletConf `yaml:"pushbullet"`
	Mastodon   MastodonConf   `yaml:"mastodon"`
	SMS        SMSConf        `yaml:"sms"`
	Sources    SourcesConf    `yaml:"sources"`
	Metrics    MetricsConf    `yaml:"metrics"`
	Logging    LoggingConf    `yaml:"logging"`
	Pingtest   PingtestConf   `yaml:"pingtest"`
}

const (
	DefaultPeriod      = 2 * time.Second
	DefaultNamespace   = "zk-env"
	DefaultMotion      = 5 * time.Minute
	DefaultEnvironment = 12 * time.Hour
	DefaultLimit       = time.Hour
	DefaultMailCommand = "mail"
)

var validate = validator.New()

// Open configuration from disk.
func Open(path string) (*Config, error) {
	if path == "" {
		path = ConfigPath("zkmonitor.yml")
	}
	file, err := os.Open(util.ExpandPath(path))
	if err != nil {
		return nil, errors.Wrap(err, "open config")
	}
	defer file.Close()
	return OpenReader(file)
}

// Open configuration from a reader.
func OpenReader(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	return OpenRaw(data)
}

// Open configuration from []byte.
func OpenRaw(data []byte) (*Config, error) {
	c := &Config{}
	if err := yaml.UnmarshalStrict(data, c); err != nil {
		return nil, errors.Wrap(err, "parse config")
	}
	c.setDefaults()
	if err := validate.Struct(c); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}
	return c, nil
}

func (c *Config) setDefaults() {
	if c.Loop.Period.Duration <= 0 {
		c.Loop.Period.Duration = DefaultPeriod
	}
	if c.MQTT.Namespace == "" {
		c.MQTT.Namespace = DefaultNamespace
	}
	if c.Holdoff.Motion.Duration <= 0 {
		c.Holdoff.Motion.Duration = DefaultMotion
	}
	if c.Holdoff.Environment.Duration <= 0 {
		c.Holdoff.Environment.Duration = DefaultEnvironment
	}
	if c.Holdoff.Limit.Duration <= 0 {
		c.Holdoff.Limit.Duration = DefaultLimit
	}
	if c.Email.Method == "" {
		c.Email.Method = "mail"
	}
	if c.Email.Command == "" {
		c.Email.Command = DefaultMailCommand
	}
	if c.GPIO.Driver == "" {
		c.GPIO.Driver = "cdev"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	for i := range c.Limits {
		if c.Limits[i].Name == "" {
			c.Limits[i].Name = c.Limits[i].Parm
		}
	}
	p := &c.Pingtest
	if p.Fails == 0 {
		p.Fails = 5
	}
	if p.Interval.Duration <= 0 {
		p.Interval.Duration = time.Minute
	}
	if p.Command == "" {
		p.Command = "/sbin/reboot"
	}
	if p.Breadcrumb == "" {
		p.Breadcrumb = "/var/tmp/pingtest.bc"
	}
}

// Topic under the configured namespace.
func (c *Config) Topic(name string) string {
	return c.MQTT.Namespace + "/" + name
}

// Marshal the effective configuration.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Get path to a config file
func ConfigPath(p string) string {
	config := os.Getenv("XDG_CONFIG_HOME")
	if config == "" {
		config = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(config, "zkmonitor", p)
}
