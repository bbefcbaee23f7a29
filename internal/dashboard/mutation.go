package dashboard

// Mutation is the uniform result of every state-changing operation. When an
// operation applied an optimistic local change and the upstream call then
// failed, the change is rolled back before the result is returned, so
// controller state never diverges from backend truth on a known failure.
type Mutation struct {
	Err        error
	rolledBack bool
	noop       bool
}

func (m Mutation) Failed() bool {
	return m.Err != nil
}

// RolledBack reports whether a failed mutation had to undo an optimistic
// local change.
func (m Mutation) RolledBack() bool {
	return m.rolledBack
}

// Noop reports that nothing was sent upstream (e.g. a ticket submit with an
// empty reply and an unchanged status).
func (m Mutation) Noop() bool {
	return m.noop
}

func mutationErr(err error) Mutation {
	return Mutation{Err: err}
}

// runMutation applies an optimistic change, issues the upstream call, and
// rolls the change back when the call fails. apply returns the rollback
// closure, or nil when the operation has no optimistic part. The caller
// must hold the controller lock for the whole round-trip; that lock is also
// the double-submission guard.
func runMutation(apply func() func(), call func() error) Mutation {
	var rollback func()
	if apply != nil {
		rollback = apply()
	}

	if err := call(); err != nil {
		result := Mutation{Err: err}
		if rollback != nil {
			rollback()
			result.rolledBack = true
		}
		return result
	}

	return Mutation{}
}
