package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewGroup(t *testing.T) {
	g := NewGroup("Road Trip", "carpool crew", "user-1", "event-1")

	if g.ID == "" {
		t.Error("expected a generated id")
	}
	if !g.IsMember("user-1") {
		t.Error("creator should be the first member")
	}
	if g.MaxMembers != DefaultMaxMembers {
		t.Errorf("max members = %d, want %d", g.MaxMembers, DefaultMaxMembers)
	}
	if len(g.InviteCode) != InviteCodeLength {
		t.Errorf("invite code length = %d, want %d", len(g.InviteCode), InviteCodeLength)
	}
}

func TestGenerateInviteCode_Alphabet(t *testing.T) {
	for i := 0; i < 100; i++ {
		code := GenerateInviteCode()
		if len(code) != InviteCodeLength {
			t.Fatalf("code %q has length %d, want %d", code, len(code), InviteCodeLength)
		}
		for _, r := range code {
			if !strings.ContainsRune(inviteCodeAlphabet, r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
	}
}

func TestGroup_AddMember(t *testing.T) {
	t.Run("adds a new member", func(t *testing.T) {
		g := NewGroup("g", "", "creator", "")
		if err := g.AddMember("user-2"); err != nil {
			t.Fatalf("expected no error, got: %v", err)
		}
		if g.MemberCount() != 2 {
			t.Errorf("member count = %d, want 2", g.MemberCount())
		}
	})

	t.Run("rejects a duplicate member", func(t *testing.T) {
		g := NewGroup("g", "", "creator", "")
		if err := g.AddMember("creator"); !errors.Is(err, ErrAlreadyMember) {
			t.Fatalf("expected ErrAlreadyMember, got %v", err)
		}
	})

	t.Run("rejects when full", func(t *testing.T) {
		g := NewGroup("g", "", "creator", "")
		g.MaxMembers = 1
		if err := g.AddMember("user-2"); !errors.Is(err, ErrGroupFull) {
			t.Fatalf("expected ErrGroupFull, got %v", err)
		}
	})
}

func TestGroup_RemoveMember(t *testing.T) {
	g := NewGroup("g", "", "creator", "")
	if err := g.AddMember("user-2"); err != nil {
		t.Fatalf("setup: %v", err)
	}

	if err := g.RemoveMember("user-2"); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if g.IsMember("user-2") {
		t.Error("user-2 should have been removed")
	}

	if err := g.RemoveMember("user-2"); !errors.Is(err, ErrNotMember) {
		t.Fatalf("expected ErrNotMember, got %v", err)
	}
}
