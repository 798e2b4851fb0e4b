package crossing

import "fmt"

// Validate checks the safety properties every phase table must satisfy and
// returns all violations at once. The returned error wraps ErrInvalidTable.
func (t Table) Validate() error {
	ec := NewErrorCollector()

	for _, p := range Phases() {
		spec := t[p]

		for i, next := range spec.Next {
			if !next.Valid() {
				ec.Add(NewTransitionError(ErrCodeUnknownPhase, p, Input(i),
					fmt.Sprintf("successor %s is not a defined phase", next)))
			}
		}

		if spec.Dwell == 0 {
			ec.Add(NewTableError(ErrCodeZeroDwell, p, "dwell time must be positive"))
		}

		if spec.Lights&^LightMask != 0 {
			ec.Add(NewTableError(ErrCodeConflictingLights, p,
				fmt.Sprintf("light word %s drives bits outside the six lamps", spec.Lights)))
		}
		if spec.Walk&^IndicatorMask != 0 {
			ec.Add(NewTableError(ErrCodeUnsafeCrossing, p,
				fmt.Sprintf("indicator word %s drives unknown lines", spec.Walk)))
		}

		for _, err := range checkLights(p, spec.Lights.Lights()) {
			ec.Add(err)
		}
		for _, err := range checkCrossing(p, spec.Lights.Lights(), spec.Walk.Indicator()) {
			ec.Add(err)
		}
	}

	// Reachability and the chain walk need a closed table.
	if ec.HasErrors() {
		return ec.Err()
	}

	var reached [NumPhases]bool
	for _, p := range t.Reachable(Initial) {
		reached[p] = true
	}
	for _, p := range Phases() {
		if !reached[p] {
			ec.Add(NewTableError(ErrCodeUnreachable, p,
				fmt.Sprintf("not reachable from %s", Initial)))
		}
	}

	for _, err := range t.checkClearanceChain() {
		ec.Add(err)
	}

	return ec.Err()
}

func checkLights(p Phase, l Lights) []error {
	var errs []error
	for _, dir := range []struct {
		name string
		lamp Lamp
	}{
		{"east/west", l.EastWest},
		{"north/south", l.NorthSouth},
	} {
		switch {
		case dir.lamp.Red && dir.lamp.Green:
			errs = append(errs, NewTableError(ErrCodeConflictingLights, p,
				dir.name+" shows red and green together"))
		case dir.lamp.Lit() > 1:
			errs = append(errs, NewTableError(ErrCodeConflictingLights, p,
				dir.name+" lights more than one lamp"))
		case dir.lamp.Lit() == 0:
			errs = append(errs, NewTableError(ErrCodeConflictingLights, p,
				dir.name+" head is dark"))
		}
	}
	if l.EastWest.Green && l.NorthSouth.Green {
		errs = append(errs, NewTableError(ErrCodeConflictingLights, p,
			"both directions show green"))
	}
	return errs
}

func checkCrossing(p Phase, l Lights, ind Indicator) []error {
	var errs []error
	if ind.Walk && ind.DontWalk {
		errs = append(errs, NewTableError(ErrCodeUnsafeCrossing, p,
			"walk and don't-walk are lit together"))
	}
	if ind.Walk && !(l.EastWest.Red && l.NorthSouth.Red) {
		errs = append(errs, NewTableError(ErrCodeUnsafeCrossing, p,
			"walk is lit while traffic is not held on red"))
	}
	return errs
}

func (t Table) checkClearanceChain() []error {
	chain := t.ClearanceChain()
	if len(chain) < 2 {
		return []error{NewTableError(ErrCodeClearanceChain, Walk, "no clearance sequence follows the crossing")}
	}

	var errs []error
	for _, p := range chain[:len(chain)-1] {
		spec := t[p]
		if !(spec.Lights.Lights().EastWest.Red && spec.Lights.Lights().NorthSouth.Red) {
			errs = append(errs, NewTableError(ErrCodeClearanceChain, p, "clearance step releases traffic"))
		}
		if spec.Walk.Indicator().Walk {
			errs = append(errs, NewTableError(ErrCodeClearanceChain, p, "clearance step shows walk"))
		}
	}
	last := chain[len(chain)-1]
	if t[last].Walk.Indicator().Walk || t.Unconditional(last) && t[last].Next[0] == chain[0] {
		errs = append(errs, NewTableError(ErrCodeClearanceChain, last, "clearance sequence never hands back to traffic"))
	}
	return errs
}
