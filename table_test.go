package crossing

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTable_Validates(t *testing.T) {
	require.NoError(t, DefaultTable().Validate())
}

func TestDefaultTable_Totality(t *testing.T) {
	table := DefaultTable()
	for _, p := range Phases() {
		for in := Input(0); in < NumInputs; in++ {
			next := table.Next(p, in)
			assert.Truef(t, next.Valid(), "%s on %s leads to %s", p, in, next)
		}
	}
}

func TestDefaultTable_Closure(t *testing.T) {
	reached := DefaultTable().Reachable(Initial)
	assert.ElementsMatch(t, Phases(), reached)
	assert.Equal(t, GoWest, reached[0])
}

func TestDefaultTable_MutualExclusivity(t *testing.T) {
	table := DefaultTable()
	for _, p := range Phases() {
		lights := table.Spec(p).Lights.Lights()
		assert.Falsef(t, lights.EastWest.Green && lights.NorthSouth.Green, "%s: both directions green", p)
		assert.Falsef(t, lights.EastWest.Green && lights.EastWest.Red, "%s: east/west green and red", p)
		assert.Falsef(t, lights.NorthSouth.Green && lights.NorthSouth.Red, "%s: north/south green and red", p)
		assert.Equalf(t, 1, lights.EastWest.Lit(), "%s: east/west lamps", p)
		assert.Equalf(t, 1, lights.NorthSouth.Lit(), "%s: north/south lamps", p)

		ind := table.Spec(p).Walk.Indicator()
		assert.Falsef(t, ind.Walk && ind.DontWalk, "%s: walk and don't-walk", p)
		if ind.Walk {
			assert.Truef(t, lights.EastWest.Red && lights.NorthSouth.Red, "%s: walk with traffic released", p)
		}
	}
}

func TestDefaultTable_Rows(t *testing.T) {
	const (
		GW = GoWest
		WW = WaitWest
		GS = GoSouth
		WS = WaitSouth
		WK = Walk
		F1 = WalkFlashOn1
		O1 = WalkFlashOff1
		F2 = WalkFlashOn2
		O2 = WalkFlashOff2
		DW = DontWalk
	)

	tests := []struct {
		phase  Phase
		lights LightPattern
		walk   PedestrianPattern
		dwell  Ticks
		next   [NumInputs]Phase
	}{
		{GoWest, 0x0C, 0x2, 50, [NumInputs]Phase{GW, GW, WW, GW, WW, GW, WW, WW}},
		{WaitWest, 0x14, 0x2, 25, [NumInputs]Phase{WK, WK, GS, GS, WK, WK, WK, WK}},
		{GoSouth, 0x21, 0x2, 50, [NumInputs]Phase{GS, WS, GS, GS, WS, WS, GS, WS}},
		{WaitSouth, 0x22, 0x2, 25, [NumInputs]Phase{GW, GW, GW, GW, WK, GW, WK, GW}},
		{Walk, 0x24, 0x8, 50, [NumInputs]Phase{WK, F1, F1, F1, WK, WK, WK, F1}},
		{WalkFlashOn1, 0x24, 0x2, 8, [NumInputs]Phase{O1, O1, O1, O1, O1, O1, O1, O1}},
		{WalkFlashOff1, 0x24, 0x0, 8, [NumInputs]Phase{F2, F2, F2, F2, F2, F2, F2, F2}},
		{WalkFlashOn2, 0x24, 0x2, 8, [NumInputs]Phase{O2, O2, O2, O2, O2, O2, O2, O2}},
		{WalkFlashOff2, 0x24, 0x0, 8, [NumInputs]Phase{DW, DW, DW, DW, DW, DW, DW, DW}},
		{DontWalk, 0x24, 0x2, 8, [NumInputs]Phase{GS, GW, GS, GS, GS, GW, GS, GS}},
	}

	table := DefaultTable()
	require.Len(t, tests, NumPhases)
	for _, tt := range tests {
		t.Run(tt.phase.String(), func(t *testing.T) {
			spec := table.Spec(tt.phase)
			assert.Equal(t, tt.lights, spec.Lights)
			assert.Equal(t, tt.walk, spec.Walk)
			assert.Equal(t, tt.dwell, spec.Dwell)
			assert.Equal(t, tt.next, spec.Next)
		})
	}
}

func TestDefaultTable_ClearanceChain(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t,
		[]Phase{WalkFlashOn1, WalkFlashOff1, WalkFlashOn2, WalkFlashOff2, DontWalk},
		table.ClearanceChain())

	for _, p := range []Phase{WalkFlashOn1, WalkFlashOff1, WalkFlashOn2, WalkFlashOff2} {
		assert.Truef(t, table.Unconditional(p), "%s should ignore its input", p)
	}
	assert.False(t, table.Unconditional(DontWalk))
	assert.False(t, table.Unconditional(Walk))
}

func TestDefaultTable_IsACopy(t *testing.T) {
	table := DefaultTable()
	table[GoWest].Dwell = 1
	table[GoWest].Next[0] = Walk

	fresh := DefaultTable()
	assert.Equal(t, Ticks(50), fresh[GoWest].Dwell)
	assert.Equal(t, GoWest, fresh[GoWest].Next[0])
}

func TestTable_NextIgnoresHighBits(t *testing.T) {
	table := DefaultTable()
	assert.Equal(t, table.Next(GoWest, NorthSouthCar), table.Next(GoWest, 0xF0|NorthSouthCar))
}

func TestTable_ValidateDetectsDefects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Table)
		code   ErrorCode
		phase  Phase
	}{
		{
			name:   "successor outside enumeration",
			mutate: func(tb *Table) { tb[GoSouth].Next[3] = Phase(42) },
			code:   ErrCodeUnknownPhase,
			phase:  GoSouth,
		},
		{
			name:   "zero dwell",
			mutate: func(tb *Table) { tb[WaitWest].Dwell = 0 },
			code:   ErrCodeZeroDwell,
			phase:  WaitWest,
		},
		{
			name:   "both directions green",
			mutate: func(tb *Table) { tb[GoWest].Lights = EastWestGreen | NorthSouthGreen },
			code:   ErrCodeConflictingLights,
			phase:  GoWest,
		},
		{
			name:   "green and red on one head",
			mutate: func(tb *Table) { tb[GoSouth].Lights = EastWestRed | NorthSouthGreen | NorthSouthRed },
			code:   ErrCodeConflictingLights,
			phase:  GoSouth,
		},
		{
			name:   "walk into traffic",
			mutate: func(tb *Table) { tb[GoWest].Walk = IndicatorWalk },
			code:   ErrCodeUnsafeCrossing,
			phase:  GoWest,
		},
		{
			name:   "walk and don't-walk together",
			mutate: func(tb *Table) { tb[Walk].Walk = IndicatorWalk | IndicatorDontWalk },
			code:   ErrCodeUnsafeCrossing,
			phase:  Walk,
		},
		{
			name: "unreachable phase",
			mutate: func(tb *Table) {
				for i := range tb[WaitWest].Next {
					if tb[WaitWest].Next[i] == Walk {
						tb[WaitWest].Next[i] = GoSouth
					}
				}
				for i := range tb[WaitSouth].Next {
					if tb[WaitSouth].Next[i] == Walk {
						tb[WaitSouth].Next[i] = GoWest
					}
				}
			},
			code:  ErrCodeUnreachable,
			phase: Walk,
		},
		{
			name:   "clearance step depends on input",
			mutate: func(tb *Table) { tb[WalkFlashOn1].Next[4] = Walk },
			code:   ErrCodeClearanceChain,
			phase:  Walk,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := DefaultTable()
			tt.mutate(&table)

			err := table.Validate()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidTable))

			var found bool
			for _, e := range err.(*ErrorCollector).Errors() {
				var te *TableError
				if errors.As(e, &te) && te.Code == tt.code && te.Phase == tt.phase {
					found = true
				}
			}
			assert.Truef(t, found, "expected %v on %s in %v", tt.code, tt.phase, err)
		})
	}
}
