// Package params holds the typed parameter registry: every monitored or
// controlled value, its broker topic, its physical binding and the
// "event" flag marking an update the alarm engine has not yet consumed.
package params

import (
	"sync"

	"github.com/pkg/errors"

	"github.com/basement-tech/Monitoring-zimKnives/logger"
)

// Subscriber is the part of the transport the registry subscribes through.
type Subscriber interface {
	Subscribe(topic string) error
}

// Publisher is the part of the transport the registry publishes through.
type Publisher interface {
	Publish(topic string, payload string) error
}

// Registry is the ordered, fixed set of parameters.
type Registry struct {
	parms   []*Parameter
	byTopic map[string]*Parameter
	byLabel map[string]*Parameter

	subscribeOnce sync.Mutex
	subscribed    bool
}

// NewRegistry checks topics and labels are unique and the order is kept.
func NewRegistry(parms ...*Parameter) (*Registry, error) {
	r := &Registry{
		parms:   parms,
		byTopic: map[string]*Parameter{},
		byLabel: map[string]*Parameter{},
	}
	for _, p := range parms {
		if p.kind == KindNone {
			return nil, errors.Errorf("parameter %s has no initial value", p.Label)
		}
		if _, exists := r.byTopic[p.Topic]; exists {
			return nil, errors.Errorf("duplicate topic: %s", p.Topic)
		}
		if _, exists := r.byLabel[p.Label]; exists {
			return nil, errors.Errorf("duplicate label: %s", p.Label)
		}
		r.byTopic[p.Topic] = p
		r.byLabel[p.Label] = p
	}
	return r, nil
}

// Parameters in insertion order.
func (r *Registry) Parameters() []*Parameter {
	return r.parms
}

// Lookup returns nil for a topic not in the registry.
func (r *Registry) Lookup(topic string) *Parameter {
	return r.byTopic[topic]
}

// ByLabel returns nil for an unknown label.
func (r *Registry) ByLabel(label string) *Parameter {
	return r.byLabel[label]
}

// Set overwrites the value of the parameter on topic. It never fails
// loudly: an unknown topic or wrong kind is logged and reported as false.
func (r *Registry) Set(topic string, v Value) bool {
	p := r.Lookup(topic)
	if p == nil {
		logger.Debugf("Can't set value for %s", topic)
		return false
	}
	if err := p.Set(v); err != nil {
		logger.Errorf("Set %s: %v", topic, err)
		return false
	}
	return true
}

// Kind of the parameter on topic, KindNone if unresolved.
func (r *Registry) Kind(topic string) Kind {
	if p := r.Lookup(topic); p != nil {
		return p.Kind()
	}
	return KindNone
}

// SubscribeAll subscribes every Subscribe-direction topic, at most once per
// registry.
func (r *Registry) SubscribeAll(s Subscriber) {
	r.subscribeOnce.Lock()
	defer r.subscribeOnce.Unlock()
	if r.subscribed {
		logger.Debug("Already subscribed ... ignoring")
		return
	}
	for _, p := range r.parms {
		if p.Direction != Subscribe {
			continue
		}
		logger.Debugf("Subscribing: %s", p.Label)
		if err := s.Subscribe(p.Topic); err != nil {
			logger.Errorf("Subscribe %s: %v", p.Topic, err)
		}
	}
	r.subscribed = true
}

// PublishAll publishes the current value of every Publish-direction
// parameter, changed or not.
func (r *Registry) PublishAll(pub Publisher) {
	for _, p := range r.parms {
		if p.Direction != Publish {
			continue
		}
		logger.Debugf("Publishing: %s", p.Label)
		if err := pub.Publish(p.Topic, p.Value().String()); err != nil {
			logger.Debugf("Publish %s: %v", p.Topic, err)
		}
	}
}
