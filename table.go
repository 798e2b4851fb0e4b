package crossing

// PhaseSpec bundles everything a phase fixes: both output words, how long
// they are held, and the successor for every sensor vector.
type PhaseSpec struct {
	Lights LightPattern
	Walk   PedestrianPattern
	Dwell  Ticks
	Next   [NumInputs]Phase
}

// Table is the complete machine, indexed by phase.
type Table [NumPhases]PhaseSpec

// all fills a transition row that ignores its input.
func all(p Phase) [NumInputs]Phase {
	var next [NumInputs]Phase
	for i := range next {
		next[i] = p
	}
	return next
}

// The row for each phase is indexed by the raw input vector
// (pedestrian, north/south, east/west). Entries are kept exactly as the
// intersection was commissioned, including the DONT_WALK row, which only
// resumes GO_WEST for inputs 001 and 101.
var defaultTable = Table{
	GoWest: {
		Lights: EastWestGreen | NorthSouthRed,
		Walk:   IndicatorDontWalk,
		Dwell:  50,
		Next:   [NumInputs]Phase{GoWest, GoWest, WaitWest, GoWest, WaitWest, GoWest, WaitWest, WaitWest},
	},
	WaitWest: {
		Lights: EastWestYellow | NorthSouthRed,
		Walk:   IndicatorDontWalk,
		Dwell:  25,
		Next:   [NumInputs]Phase{Walk, Walk, GoSouth, GoSouth, Walk, Walk, Walk, Walk},
	},
	GoSouth: {
		Lights: EastWestRed | NorthSouthGreen,
		Walk:   IndicatorDontWalk,
		Dwell:  50,
		Next:   [NumInputs]Phase{GoSouth, WaitSouth, GoSouth, GoSouth, WaitSouth, WaitSouth, GoSouth, WaitSouth},
	},
	WaitSouth: {
		Lights: EastWestRed | NorthSouthYellow,
		Walk:   IndicatorDontWalk,
		Dwell:  25,
		Next:   [NumInputs]Phase{GoWest, GoWest, GoWest, GoWest, Walk, GoWest, Walk, GoWest},
	},
	Walk: {
		Lights: EastWestRed | NorthSouthRed,
		Walk:   IndicatorWalk,
		Dwell:  50,
		Next:   [NumInputs]Phase{Walk, WalkFlashOn1, WalkFlashOn1, WalkFlashOn1, Walk, Walk, Walk, WalkFlashOn1},
	},
	WalkFlashOn1: {
		Lights: EastWestRed | NorthSouthRed,
		Walk:   IndicatorDontWalk,
		Dwell:  8,
		Next:   all(WalkFlashOff1),
	},
	WalkFlashOff1: {
		Lights: EastWestRed | NorthSouthRed,
		Walk:   IndicatorOff,
		Dwell:  8,
		Next:   all(WalkFlashOn2),
	},
	WalkFlashOn2: {
		Lights: EastWestRed | NorthSouthRed,
		Walk:   IndicatorDontWalk,
		Dwell:  8,
		Next:   all(WalkFlashOff2),
	},
	WalkFlashOff2: {
		Lights: EastWestRed | NorthSouthRed,
		Walk:   IndicatorOff,
		Dwell:  8,
		Next:   all(DontWalk),
	},
	DontWalk: {
		Lights: EastWestRed | NorthSouthRed,
		Walk:   IndicatorDontWalk,
		Dwell:  8,
		Next:   [NumInputs]Phase{GoSouth, GoWest, GoSouth, GoSouth, GoSouth, GoWest, GoSouth, GoSouth},
	},
}

// DefaultTable returns a copy of the compiled-in phase table.
func DefaultTable() Table {
	return defaultTable
}

// Spec returns the definition of phase p.
func (t Table) Spec(p Phase) PhaseSpec {
	return t[p]
}

// Next returns the successor of p for the sensor vector in. Bits above the
// three sensor lines are ignored.
func (t Table) Next(p Phase, in Input) Phase {
	return t[p].Next[in&InputMask]
}

// Reachable returns every phase that some input sequence can lead to from
// start, start included, in breadth-first order.
func (t Table) Reachable(start Phase) []Phase {
	if !start.Valid() {
		return nil
	}
	var seen [NumPhases]bool
	seen[start] = true
	order := []Phase{start}
	for i := 0; i < len(order); i++ {
		for _, next := range t[order[i]].Next {
			if !next.Valid() || seen[next] {
				continue
			}
			seen[next] = true
			order = append(order, next)
		}
	}
	return order
}

// Unconditional reports whether p moves to the same successor whatever the input.
func (t Table) Unconditional(p Phase) bool {
	row := t[p].Next
	for _, next := range row[1:] {
		if next != row[0] {
			return false
		}
	}
	return true
}

// ClearanceChain returns the run of unconditional phases entered after Walk,
// followed by the phase the run hands over to. For the default table this is
// WALK_FLASH_ON_1, WALK_FLASH_OFF_1, WALK_FLASH_ON_2, WALK_FLASH_OFF_2, DONT_WALK.
func (t Table) ClearanceChain() []Phase {
	var entry Phase
	found := false
	for _, next := range t[Walk].Next {
		if next != Walk && next.Valid() {
			entry, found = next, true
			break
		}
	}
	if !found {
		return nil
	}

	var visited [NumPhases]bool
	chain := []Phase{entry}
	visited[entry] = true
	for p := entry; t.Unconditional(p); {
		p = t[p].Next[0]
		if !p.Valid() || visited[p] {
			break
		}
		visited[p] = true
		chain = append(chain, p)
	}
	return chain
}
