package user

import "testing"

func TestValidateEmail(t *testing.T) {
	ok := []string{"alice@college.edu", "john.doe+1@dept.college.edu", "t_1@x.io"}
	for _, v := range ok {
		if err := ValidateEmail(v); err != nil {
			t.Fatalf("expected valid email %q: %v", v, err)
		}
	}
	bad := []string{"", "alice", "alice@", "@college.edu", "a b@college.edu"}
	for _, v := range bad {
		if err := ValidateEmail(v); err == nil {
			t.Fatalf("expected invalid email %q", v)
		}
	}
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct horse battery")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !VerifyPassword(hash, "correct horse battery") {
		t.Fatal("expected password to verify")
	}
	if VerifyPassword(hash, "wrong") {
		t.Fatal("expected wrong password to fail")
	}
	if VerifyPassword("", "anything") {
		t.Fatal("expected empty hash to fail")
	}
}

func TestInitialStatus(t *testing.T) {
	if got := InitialStatus(RoleTeacher); got != StatusPending {
		t.Fatalf("teacher should start PENDING, got %s", got)
	}
	if got := InitialStatus(RoleStudent); got != StatusActive {
		t.Fatalf("student should start ACTIVE, got %s", got)
	}
	if got := InitialStatus(RoleAdmin); got != StatusActive {
		t.Fatalf("admin should start ACTIVE, got %s", got)
	}
}
