package crawler

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestLoginSatisfiedBy(t *testing.T) {
	const (
		base  = "https://example.com"
		login = "https://example.com/login"
	)

	tests := []struct {
		current string
		want    bool
	}{
		{"https://example.com", true},
		{"https://example.com/", true},
		{"https://example.com/mypage", true},
		{"https://example.com/login", false},
		{"https://auth.example.com/sso", false},
		{"about:blank", false},
	}

	for _, tt := range tests {
		if got := LoginSatisfiedBy(tt.current, base, login); got != tt.want {
			t.Errorf("LoginSatisfiedBy(%q) = %v, want %v", tt.current, got, tt.want)
		}
	}

	// mixed-case or default-port base URLs match the page the browser reports
	variants := []struct {
		current, base, login string
		want                 bool
	}{
		{"https://example.com/", "https://Example.com", "https://Example.com/login", true},
		{"https://example.com/mypage", "HTTPS://EXAMPLE.COM:443/", "https://example.com/login", true},
		{"https://example.com/login", "https://Example.com", "https://EXAMPLE.com/login", false},
		{"https://example.com.evil.test/", "https://example.com", "https://example.com/login", false},
	}
	for _, tt := range variants {
		if got := LoginSatisfiedBy(tt.current, tt.base, tt.login); got != tt.want {
			t.Errorf("LoginSatisfiedBy(%q, %q, %q) = %v, want %v", tt.current, tt.base, tt.login, got, tt.want)
		}
	}

	// login page is the base URL itself
	if !LoginSatisfiedBy("https://example.com/", "https://example.com/", "https://example.com/") {
		t.Error("Expected exact base match to satisfy the gate")
	}
}

func TestLoginGateNotRequired(t *testing.T) {
	page := newFakePage(map[string]sitePage{"https://example.com/": {Title: "Home"}})
	gate := NewLoginGate(testConfig("https://example.com/"), nil)

	state, err := gate.Run(context.Background(), page)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state != LoginNotRequired {
		t.Errorf("Expected %s, got %s", LoginNotRequired, state)
	}
	if len(page.navigated) != 1 || page.navigated[0] != "https://example.com/" {
		t.Errorf("Expected one navigation to the base URL, got %v", page.navigated)
	}
}

func TestLoginGateNotRequiredSwallowsErrors(t *testing.T) {
	page := newFakePage(map[string]sitePage{})
	sink := &recordingSink{}
	gate := NewLoginGate(testConfig("https://example.com/"), sink)

	state, err := gate.Run(context.Background(), page)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state != LoginNotRequired {
		t.Errorf("Expected %s, got %s", LoginNotRequired, state)
	}
	if !sink.contains("Initial page load error") {
		t.Error("Expected load error to be logged")
	}
}

func TestLoginGateSatisfied(t *testing.T) {
	page := newFakePage(map[string]sitePage{"https://example.com/login": {Title: "Login"}})
	page.urlSequence = []string{
		"https://example.com/login",
		"https://example.com/login",
		"https://example.com/main",
	}

	config := testConfig("https://example.com")
	config.UseLogin = true
	config.LoginURL = "https://example.com/login"
	config.LoginTimeout = time.Minute

	gate := NewLoginGate(config, nil)
	state, err := gate.Run(context.Background(), page)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state != LoginSatisfied || gate.State() != LoginSatisfied {
		t.Errorf("Expected %s, got %s", LoginSatisfied, state)
	}
	if page.navigated[0] != "https://example.com/login" {
		t.Errorf("Expected login page navigation, got %v", page.navigated)
	}
}

func TestLoginGateMixedCaseBaseURL(t *testing.T) {
	page := newFakePage(map[string]sitePage{"https://Example.com/login": {Title: "Login"}})
	page.urlSequence = []string{
		"https://example.com/login",
		"https://example.com/",
	}

	config := testConfig("https://Example.com")
	config.UseLogin = true
	config.LoginURL = "https://Example.com/login"
	config.LoginTimeout = 5 * time.Second

	state, err := NewLoginGate(config, nil).Run(context.Background(), page)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state != LoginSatisfied {
		t.Errorf("Expected %s, got %s", LoginSatisfied, state)
	}
}

func TestLoginGateDefaultsLoginURLToBase(t *testing.T) {
	page := newFakePage(map[string]sitePage{"https://example.com/": {Title: "Home"}})

	config := testConfig("https://example.com/")
	config.UseLogin = true

	state, err := NewLoginGate(config, nil).Run(context.Background(), page)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state != LoginSatisfied {
		t.Errorf("Expected %s, got %s", LoginSatisfied, state)
	}
	if page.navigated[0] != "https://example.com/" {
		t.Errorf("Expected base URL navigation, got %v", page.navigated)
	}
}

func TestLoginGateTimesOut(t *testing.T) {
	page := newFakePage(map[string]sitePage{"https://example.com/login": {Title: "Login"}})

	config := testConfig("https://example.com/")
	config.UseLogin = true
	config.LoginURL = "https://example.com/login"
	config.LoginTimeout = 10 * time.Millisecond

	sink := &recordingSink{}
	state, err := NewLoginGate(config, sink).Run(context.Background(), page)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if state != LoginTimedOut {
		t.Errorf("Expected %s, got %s", LoginTimedOut, state)
	}
	if !sink.contains("WARNING") {
		t.Error("Expected timeout warning")
	}
}

func TestLoginGateCancelled(t *testing.T) {
	page := newFakePage(map[string]sitePage{"https://example.com/login": {Title: "Login"}})

	config := testConfig("https://example.com/")
	config.UseLogin = true
	config.LoginURL = "https://example.com/login"
	config.LoginTimeout = time.Minute

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	state, err := NewLoginGate(config, nil).Run(ctx, page)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context.DeadlineExceeded, got %v", err)
	}
	if state != LoginAwaiting {
		t.Errorf("Expected %s, got %s", LoginAwaiting, state)
	}
}

func TestLoginGateLoginPageUnreachable(t *testing.T) {
	page := newFakePage(map[string]sitePage{})

	config := testConfig("https://example.com/")
	config.UseLogin = true

	if _, err := NewLoginGate(config, nil).Run(context.Background(), page); err == nil {
		t.Error("Expected error when the login page cannot be opened")
	}
}

func TestLoginStateString(t *testing.T) {
	if LoginTimedOut.String() != "timed-out" || LoginState(42).String() != "LoginState(42)" {
		t.Error("Unexpected LoginState strings")
	}
}
