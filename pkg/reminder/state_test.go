package reminder

import "testing"

func TestTransitionTable(t *testing.T) {
	allowed := map[[2]State]bool{
		{Idle, Loading}:     true,
		{Idle, Existing}:    true,
		{Loading, Success}:  true,
		{Loading, Existing}: true,
		{Loading, Error}:    true,
		{Error, Loading}:    true,
		{Success, Idle}:     true,
		{Existing, Idle}:    true,
	}
	states := []State{Idle, Loading, Success, Existing, Error}
	for _, from := range states {
		for _, to := range states {
			if got, want := from.CanTransition(to), allowed[[2]State{from, to}]; got != want {
				t.Errorf("%s -> %s: expected %v, got %v", from, to, want, got)
			}
		}
	}
}

func TestStatePredicates(t *testing.T) {
	if !Idle.CanSubmit() || !Error.CanSubmit() {
		t.Fatal("idle and error must accept submissions")
	}
	for _, s := range []State{Loading, Success, Existing} {
		if s.CanSubmit() {
			t.Fatalf("%s must not accept submissions", s)
		}
	}
	if !Success.Terminal() || !Existing.Terminal() || Error.Terminal() {
		t.Fatal("unexpected terminal states")
	}
	if State(42).String() != "State(42)" {
		t.Fatalf("unexpected name %q", State(42).String())
	}
}
