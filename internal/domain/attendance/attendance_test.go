package attendance

import "testing"

func TestValidateClassDate(t *testing.T) {
	if err := ValidateClassDate("2025-01-10"); err != nil {
		t.Fatalf("expected valid date: %v", err)
	}
	for _, bad := range []string{"", "10-01-2025", "2025/01/10", "2025-13-01", "today"} {
		if err := ValidateClassDate(bad); err == nil {
			t.Fatalf("expected invalid date %q", bad)
		}
	}
}

func TestStatsPercentage(t *testing.T) {
	s := Stats{Present: 3, Absent: 1, Total: 4}
	if got := s.Percentage(); got != 75 {
		t.Fatalf("expected 75, got %v", got)
	}
	empty := Stats{}
	if got := empty.Percentage(); got != 0 {
		t.Fatalf("expected 0 for no records, got %v", got)
	}
}
