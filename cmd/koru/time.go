// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import "time"

// newEventTicker creates the ticker driving window event polling.
// A non-positive delay falls back to one poll per millisecond.
func newEventTicker(delay time.Duration) *time.Ticker {
	if delay <= 0 {
		delay = time.Millisecond
	}
	return time.NewTicker(delay)
}
