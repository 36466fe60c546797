package model

import "testing"

func TestHomeworkFields(t *testing.T) {
	hw := Homework{"homework_name": "hw05_final", "status": "approved"}

	name, ok := hw.Name()
	if !ok || name != "hw05_final" {
		t.Fatalf("Name() = %q, %v", name, ok)
	}
	st, ok := hw.Status()
	if !ok || st != StatusApproved {
		t.Fatalf("Status() = %q, %v", st, ok)
	}
}

func TestHomeworkFields_Absent(t *testing.T) {
	hw := Homework{"id": float64(1), "status": nil}

	if _, ok := hw.Name(); ok {
		t.Fatalf("expected name to be absent")
	}
	if _, ok := hw.Status(); ok {
		t.Fatalf("null status should count as absent")
	}
}

func TestVerdictTableIsClosed(t *testing.T) {
	if len(Verdicts) != 3 {
		t.Fatalf("expected 3 verdicts, got %d", len(Verdicts))
	}
	for _, s := range []Status{StatusApproved, StatusReviewing, StatusRejected} {
		if _, ok := s.Verdict(); !ok {
			t.Fatalf("missing verdict for %s", s)
		}
	}
	if _, ok := Status("pending").Verdict(); ok {
		t.Fatalf("pending must not have a verdict")
	}
}
