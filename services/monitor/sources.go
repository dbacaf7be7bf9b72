package monitor

import (
	linuxproc "github.com/c9s/goprocinfo/linux"
	"github.com/mdlayher/apcupsd"
	"github.com/pkg/errors"

	"github.com/basement-tech/Monitoring-zimKnives/params"
)

var loadavgPath = "/proc/loadavg"

func readLoadavg() (params.Value, error) {
	avg, err := linuxproc.ReadLoadAvg(loadavgPath)
	if err != nil {
		return nil, errors.Wrap(err, "read load average")
	}
	return params.Float(avg.Last1Min), nil
}

// upsStatus queries apcupsd at addr for the UPS status line, e.g.
// "ONLINE" or "ONBATT".
func upsStatus(addr string) params.Acquirer {
	return func() (params.Value, error) {
		c, err := apcupsd.Dial("tcp", addr)
		if err != nil {
			return nil, errors.Wrap(err, "connect to apcupsd")
		}
		defer c.Close()
		status, err := c.Status()
		if err != nil {
			return nil, errors.Wrap(err, "apcupsd status")
		}
		return params.Text(status.Status), nil
	}
}
