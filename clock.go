// Contest Clock
//
// Copyright (c) 2024, 2025  The go-combat authors
//
// This file is part of go-combat.
//
// go-combat is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License,
// version 3, as published by the Free Software Foundation.
//
// go-combat is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public
// License, version 3, along with go-combat. If not, see
// <http://www.gnu.org/licenses/>

package combat

// A Clock is the countdown timer of one competitor within one
// contest.  A clock pair is created per fixture execution and never
// shared, even between concurrent fixtures of the same competitor.
type Clock struct {
	BaseMs      int64
	IncMs       int64
	RemainingMs int64
	Forfeited   bool
}

// MakeClock returns a fresh clock charged with the base time of TC.
func MakeClock(tc TimeControl) *Clock {
	return &Clock{
		BaseMs:      tc.BaseMs,
		IncMs:       tc.IncMs,
		RemainingMs: tc.BaseMs,
	}
}

// Reset recharges the clock to its base time.  The forfeit flag is
// deliberately not cleared: forfeiture is permanent for the contest.
func (c *Clock) Reset() {
	c.RemainingMs = c.BaseMs
}

// Update deducts the time spent on one move and credits the
// increment.  The competitor forfeits if less than 1ms would remain
// before the increment is added; the increment never rescues a
// forfeiting move.  Returns the forfeit flag for convenience.
func (c *Clock) Update(elapsedMs int64) bool {
	if c.RemainingMs-elapsedMs < 1 {
		c.Forfeited = true
	}
	c.RemainingMs += c.IncMs - elapsedMs
	return c.Forfeited
}
