package wallet

import "sync"

// Subscription is a registered notification listener. Holding the handle is
// what keeps the listener registered; Close deregisters it. Notifications
// already dispatched before Close may still be delivered.
type Subscription struct {
	events <-chan Notification
	stop   func()
	once   sync.Once
}

// NewSubscription wraps a notification channel and a stop function that
// deregisters the underlying listener. stop may be nil.
func NewSubscription(events <-chan Notification, stop func()) *Subscription {
	return &Subscription{
		events: events,
		stop:   stop,
	}
}

// Events returns the notification channel. The channel is closed when the
// subscription ends, whether by Close or by the wallet side going away.
func (s *Subscription) Events() <-chan Notification {
	return s.events
}

// Close deregisters the listener. Safe to call more than once.
func (s *Subscription) Close() {
	s.once.Do(func() {
		if s.stop != nil {
			s.stop()
		}
	})
}
