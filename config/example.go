package config

// ExampleYaml is a complete configuration for the workshop monitor.
var ExampleYaml = `
location: zimKnives shop
loop:
  period: 2s
mqtt:
  broker: tcp://192.168.1.10:1883
  client_id: zk-monitor
  namespace: zk-env
gpio:
  driver: cdev
  chip: gpiochip0
  motion: 4
  light: 26
  keysw: 17
  ovrled: 27
holdoff:
  motion: 5m
  environment: 12h
  limit: 3600
limits:
  - name: hot
    parm: temp
    limit: 95
    sense: high
    message: Shop temperature is high
  - name: cold
    parm: temp
    limit: 40
    sense: low
    message: Shop temperature is low
  - name: co
    parm: gasco
    limit: 400
    sense: high
    message: Carbon monoxide detected
notify:
  alarm: [owner@example.com]
  notifications: [owner@example.com]
email:
  method: mail
logging:
  level: info
pingtest:
  hosts: [www.google.com]
  fails: 5
  interval: 1m
  reboot: true
`

// ExampleConfig is ExampleYaml loaded.
var ExampleConfig = func() *Config {
	c, err := OpenRaw([]byte(ExampleYaml))
	if err != nil {
		panic(err)
	}
	return c
}()
