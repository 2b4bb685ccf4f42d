package production

import (
	"context"
	"fmt"

	"github.com/comalice/calcx"
	"github.com/comalice/calcx/internal/keymap"
)

// Mismatch reports a tape whose final snapshot differs from its expectation.
type Mismatch struct {
	Tape string
	Want Expectation
	Got  calcx.Snapshot
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("tape %q: got display %q expression %q, want display %q expression %q",
		m.Tape, m.Got.Display, m.Got.Expression, m.Want.Display, m.Want.Expression)
}

// Replay feeds the tape's keys through km into e. Cancellation is checked
// between keys. When the tape carries an expectation, a differing final
// snapshot is returned together with a *Mismatch error.
func Replay(ctx context.Context, e *calcx.Engine, km *keymap.Keymap, tape *Tape) (calcx.Snapshot, error) {
	for i, key := range tape.Keys {
		if err := ctx.Err(); err != nil {
			return e.Snapshot(), err
		}
		a, err := km.Lookup(key)
		if err != nil {
			return e.Snapshot(), fmt.Errorf("tape %q key %d: %w", tape.Name, i, err)
		}
		if _, err := e.Dispatch(a); err != nil {
			return e.Snapshot(), fmt.Errorf("tape %q key %d: %w", tape.Name, i, err)
		}
	}

	snap := e.Snapshot()
	if tape.Expect != nil && (snap.Display != tape.Expect.Display || snap.Expression != tape.Expect.Expression) {
		return snap, &Mismatch{Tape: tape.Name, Want: *tape.Expect, Got: snap}
	}
	return snap, nil
}
