package core

import "testing"

func adminYes() bool { return true }
func adminNo() bool  { return false }

func TestEvaluateAllowsPlainCommand(t *testing.T) {
	cmd := &Command{Name: "ping"}
	caller := &Caller{}
	if got := Evaluate(cmd, caller); got != Allow {
		t.Fatalf("expected Allow, got %v", got)
	}
}

func TestEvaluateOwnerOnly(t *testing.T) {
	cmd := &Command{Name: "listpremium", OwnerOnly: true}

	if got := Evaluate(cmd, &Caller{}); got != DenyOwner {
		t.Fatalf("non-owner should be denied, got %v", got)
	}
	if got := Evaluate(cmd, &Caller{IsOwner: true}); got != Allow {
		t.Fatalf("owner should be allowed, got %v", got)
	}
}

func TestEvaluateAdminOnly(t *testing.T) {
	cmd := &Command{Name: "tagall", AdminOnly: true}

	if got := Evaluate(cmd, &Caller{IsGroup: true, IsAdmin: adminNo}); got != DenyAdmin {
		t.Fatalf("non-admin should be denied, got %v", got)
	}
	if got := Evaluate(cmd, &Caller{IsGroup: true, IsAdmin: adminYes}); got != Allow {
		t.Fatalf("admin should be allowed, got %v", got)
	}
}

func TestEvaluateAdminOnlyOutsideGroup(t *testing.T) {
	cmd := &Command{Name: "tagall", AdminOnly: true}
	if got := Evaluate(cmd, &Caller{IsGroup: false, IsAdmin: adminYes}); got != DenyAdmin {
		t.Fatalf("admin-only in private chat should deny, got %v", got)
	}
}

func TestEvaluateAdminOnlyNilLookup(t *testing.T) {
	cmd := &Command{Name: "tagall", AdminOnly: true}
	if got := Evaluate(cmd, &Caller{IsGroup: true}); got != DenyAdmin {
		t.Fatalf("missing admin lookup should deny, got %v", got)
	}
}

func TestEvaluatePremium(t *testing.T) {
	cmd := &Command{Name: "apod", Premium: true}

	if got := Evaluate(cmd, &Caller{}); got != DenyPremium {
		t.Fatalf("free user should be denied, got %v", got)
	}
	if got := Evaluate(cmd, &Caller{IsPremium: true}); got != Allow {
		t.Fatalf("premium user should be allowed, got %v", got)
	}
}

func TestEvaluateGroupOnly(t *testing.T) {
	cmd := &Command{Name: "story", GroupOnly: true}

	if got := Evaluate(cmd, &Caller{IsGroup: false}); got != DenyGroupOnly {
		t.Fatalf("group-only in private chat should deny, got %v", got)
	}
	if got := Evaluate(cmd, &Caller{IsGroup: true}); got != Allow {
		t.Fatalf("group-only in group should allow, got %v", got)
	}
}

func TestEvaluatePrivateOnly(t *testing.T) {
	cmd := &Command{Name: "pair", PrivateOnly: true}

	if got := Evaluate(cmd, &Caller{IsGroup: true}); got != DenyPrivateOnly {
		t.Fatalf("private-only in group should deny, got %v", got)
	}
	if got := Evaluate(cmd, &Caller{IsGroup: false}); got != Allow {
		t.Fatalf("private-only in private chat should allow, got %v", got)
	}
}

// The check order is fixed: the first failing flag decides the denial even
// when later flags also fail.
func TestEvaluateFirstFailingFlagWins(t *testing.T) {
	cmd := &Command{Name: "x", OwnerOnly: true, AdminOnly: true, Premium: true}
	caller := &Caller{IsGroup: true, IsAdmin: adminNo}
	if got := Evaluate(cmd, caller); got != DenyOwner {
		t.Fatalf("owner check should fire first, got %v", got)
	}
}

func TestEvaluateContradictoryChatFlags(t *testing.T) {
	cmd := &Command{Name: "x", GroupOnly: true, PrivateOnly: true}

	if got := Evaluate(cmd, &Caller{IsGroup: false}); got != DenyGroupOnly {
		t.Fatalf("contradictory flags in private chat: got %v", got)
	}
	if got := Evaluate(cmd, &Caller{IsGroup: true}); got != DenyPrivateOnly {
		t.Fatalf("contradictory flags in group chat: got %v", got)
	}
}

func TestEvaluateAdminCheckSkippedWhenNotNeeded(t *testing.T) {
	called := false
	caller := &Caller{IsGroup: true, IsAdmin: func() bool {
		called = true
		return true
	}}

	if got := Evaluate(&Command{Name: "ping"}, caller); got != Allow {
		t.Fatalf("expected Allow, got %v", got)
	}
	if called {
		t.Fatalf("admin lookup must not run for commands without AdminOnly")
	}
}

func TestDecisionMessages(t *testing.T) {
	if Allow.Message() != "" {
		t.Fatalf("Allow should carry no message")
	}
	for _, d := range []Decision{DenyOwner, DenyAdmin, DenyPremium, DenyGroupOnly, DenyPrivateOnly} {
		if d.Message() == "" {
			t.Fatalf("decision %v should carry a message", d)
		}
	}
}
