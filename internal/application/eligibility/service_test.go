package eligibility

import (
	"testing"

	domainAttendance "github.com/campus-hub/campus-hub/internal/domain/attendance"
)

func TestEvaluateDefaultRule(t *testing.T) {
	pass := domainAttendance.Stats{Present: 8, Absent: 2, Total: 10}
	ok, err := Evaluate("percentage >= 75", pass)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !ok {
		t.Fatal("expected 80% to be eligible")
	}

	fail := domainAttendance.Stats{Present: 7, Absent: 3, Total: 10}
	ok, err = Evaluate("percentage >= 75", fail)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if ok {
		t.Fatal("expected 70% to be ineligible")
	}
}

func TestEvaluateCompoundRule(t *testing.T) {
	stats := domainAttendance.Stats{Present: 7, Absent: 1, Leave: 2, Total: 10}
	ok, err := Evaluate("percentage >= 70 && absent <= 2", stats)
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !ok {
		t.Fatal("expected compound rule to pass")
	}
}

func TestEvaluateEmptyRule(t *testing.T) {
	ok, err := Evaluate("  ", domainAttendance.Stats{})
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !ok {
		t.Fatal("empty rule should pass everyone")
	}
}

func TestEvaluateNonBooleanRule(t *testing.T) {
	if _, err := Evaluate("percentage + 1", domainAttendance.Stats{Total: 1, Present: 1}); err == nil {
		t.Fatal("expected error for non-boolean rule")
	}
}

func TestEvaluateBadExpression(t *testing.T) {
	if _, err := Evaluate("percentage >=", domainAttendance.Stats{}); err == nil {
		t.Fatal("expected parse error")
	}
}
