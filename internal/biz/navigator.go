package biz

import "time"

// Navigator performs navigation on behalf of the click handler.
type Navigator interface {
	// NavigateAfter navigates to destination once delay has elapsed.
	NavigateAfter(destination string, delay time.Duration)
}

var (
	_ Navigator = (*TimerNavigator)(nil)
	_ Navigator = ClientNavigator{}
)

// TimerNavigator arms one independent timer per call. Timers are never
// cancelled.
type TimerNavigator struct {
	navigate func(destination string)
}

// NewTimerNavigator creates a navigator that calls navigate when a timer fires.
func NewTimerNavigator(navigate func(destination string)) *TimerNavigator {
	return &TimerNavigator{navigate: navigate}
}

func (n *TimerNavigator) NavigateAfter(destination string, delay time.Duration) {
	time.AfterFunc(delay, func() {
		n.navigate(destination)
	})
}

// ClientNavigator leaves navigation to the remote client, which receives
// the destination and delay in the click Decision.
type ClientNavigator struct{}

// NewClientNavigator returns a ClientNavigator as a Navigator.
func NewClientNavigator() Navigator {
	return ClientNavigator{}
}

func (ClientNavigator) NavigateAfter(string, time.Duration) {}
