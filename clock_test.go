// Contest Clock Tests
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

import "testing"

func TestClockUpdate(t *testing.T) {
	for i, test := range []struct {
		base, inc, elapsed int64
		forfeit            bool
		remaining          int64
	}{
		{1000, 0, 100, false, 900},
		{1000, 100, 100, false, 1000},
		{1000, 0, 999, false, 1},
		{1000, 0, 1000, true, 0},
		{1000, 0, 1500, true, -500},
		// The increment never rescues a forfeiting move
		{1000, 5000, 1000, true, 5000},
		{100, 0, 100, true, 0},
		{100, 0, 99, false, 1},
	} {
		c := MakeClock(TimeControl{BaseMs: test.base, IncMs: test.inc})
		if got := c.Update(test.elapsed); got != test.forfeit {
			t.Errorf("[%d] Update(%d) forfeit = %v, want %v",
				i, test.elapsed, got, test.forfeit)
		}
		if c.Forfeited != test.forfeit {
			t.Errorf("[%d] Forfeited = %v, want %v",
				i, c.Forfeited, test.forfeit)
		}
		if c.RemainingMs != test.remaining {
			t.Errorf("[%d] RemainingMs = %d, want %d",
				i, c.RemainingMs, test.remaining)
		}
	}
}

func TestClockForfeitIsPermanent(t *testing.T) {
	c := MakeClock(TimeControl{BaseMs: 100, IncMs: 1000})
	if c.Update(100) != true {
		t.Fatal("Expected forfeit on exhausted base time")
	}
	// Generous increments must not revert the forfeit
	for i := 0; i < 4; i++ {
		if c.Update(1) != true {
			t.Fatalf("Forfeit reverted after %d updates", i+1)
		}
	}
	c.Reset()
	if !c.Forfeited {
		t.Error("Reset cleared the forfeit flag")
	}
	if c.RemainingMs != c.BaseMs {
		t.Errorf("Reset left %dms, want %dms", c.RemainingMs, c.BaseMs)
	}
}
