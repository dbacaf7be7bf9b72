package monitor

import (
	"github.com/Knetic/govaluate"
	"github.com/pkg/errors"

	"github.com/basement-tech/Monitoring-zimKnives/config"
)

// Limit is a threshold check over one parameter.
type Limit struct {
	config.LimitConf
	expr *govaluate.EvaluableExpression
	err  error
}

var errBadSense = errors.New("bad sense")

// NewLimits compiles the configured checks. A check whose expression does
// not compile is kept and reports its error each time it runs.
func NewLimits(confs []config.LimitConf) []*Limit {
	limits := make([]*Limit, 0, len(confs))
	for _, c := range confs {
		l := &Limit{LimitConf: c}
		if c.When != "" {
			l.expr, l.err = govaluate.NewEvaluableExpression(c.When)
			l.err = errors.Wrapf(l.err, "limit %s", c.Name)
		}
		limits = append(limits, l)
	}
	return limits
}

// Match reports whether value trips the check: >= limit for "high",
// <= limit for "low", or the When expression if set.
func (l *Limit) Match(value float64) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	if l.expr != nil {
		result, err := l.expr.Evaluate(map[string]interface{}{
			"value": value,
			"limit": l.Limit,
		})
		if err != nil {
			return false, errors.Wrapf(err, "limit %s", l.Name)
		}
		hit, ok := result.(bool)
		if !ok {
			return false, errors.Errorf("limit %s: expression is not boolean: %v", l.Name, result)
		}
		return hit, nil
	}
	switch l.Sense {
	case "high":
		return value >= l.Limit, nil
	case "low":
		return value <= l.Limit, nil
	}
	return false, errors.Wrapf(errBadSense, "sense = %q", l.Sense)
}
