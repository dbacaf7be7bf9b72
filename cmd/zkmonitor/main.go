// Command zkmonitor runs the shop monitoring services.
package main

import (
	"os"

	"github.com/basement-tech/Monitoring-zimKnives/services"
	"github.com/basement-tech/Monitoring-zimKnives/services/monitor"
	"github.com/basement-tech/Monitoring-zimKnives/services/pingtest"
)

func registerServices() {
	// register available services
	services.Register(&monitor.Service{})
	services.Register(&pingtest.Service{})
}

func main() {
	registerServices()
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
