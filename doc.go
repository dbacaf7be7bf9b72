// The zkmonitor workshop monitoring system
//
// Features
//
// - Remote temperature, humidity and gas readings over MQTT
//
// - Motion triggered light and alarm, armed by key switch or remote override
//
// - Threshold alarms with configurable holdoff
//
// - Periodic environment status notifications
//
// - Panic button, load average and UPS status parameters
//
// - Internet watchdog that reboots the machine on outage
//
// Notifications
//
// - Email (mail command, SMTP or Mailgun)
//
// - Telegram, Pushbullet, Mastodon
//
// - SMS (GSM modem)
//
// Devices supported
//
// - Raspberry Pi GPIO (character device or /dev/gpiomem)
package zkmonitor
