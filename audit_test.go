package goFed

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/MrEthical07/goFed/identity"
)

func TestAuditDispatcherDisabledIsNil(t *testing.T) {
	d := newAuditDispatcher(AuditConfig{Enabled: false}, NoOpSink{})
	if d != nil {
		t.Fatal("expected nil dispatcher when audit is disabled")
	}

	// Nil receivers are safe on the emit path.
	d.Emit(context.Background(), AuditEvent{})
	d.Close()
	if d.Dropped() != 0 {
		t.Fatal("expected zero dropped on nil dispatcher")
	}
}

func TestAuditDispatcherDeliversAndDrainsOnClose(t *testing.T) {
	sink := NewChannelSink(16)
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 16}, sink)

	for i := 0; i < 5; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: auditEventLoginSuccess})
	}
	d.Close()

	received := 0
	timeout := time.After(2 * time.Second)
	for received < 5 {
		select {
		case <-sink.Events():
			received++
		case <-timeout:
			t.Fatalf("expected 5 events after close, got %d", received)
		}
	}
}

func TestAuditDispatcherDropsWhenFull(t *testing.T) {
	// A sink that never consumes; buffer of 1 fills immediately.
	blocked := make(chan struct{})
	sink := blockingSink{release: blocked}

	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 1, DropIfFull: true}, sink)

	// Saturate the dispatcher: one event may be in-flight in the worker, one
	// sits in the buffer, the rest must be dropped.
	const emitted = 50
	for i := 0; i < emitted; i++ {
		d.Emit(context.Background(), AuditEvent{EventType: auditEventLogout})
	}

	if d.Dropped() == 0 {
		t.Fatal("expected dropped events under backpressure")
	}
	if d.Dropped() >= emitted {
		t.Fatalf("expected some events to be accepted, dropped %d of %d", d.Dropped(), emitted)
	}

	close(blocked)
	d.Close()
}

type blockingSink struct {
	release chan struct{}
}

func (s blockingSink) Emit(_ context.Context, _ AuditEvent) {
	<-s.release
}

func TestAuditDispatcherEmitAfterClose(t *testing.T) {
	d := newAuditDispatcher(AuditConfig{Enabled: true, BufferSize: 4}, NoOpSink{})
	d.Close()

	// Must not panic or block.
	d.Emit(context.Background(), AuditEvent{EventType: auditEventLogout})
}

func TestJSONWriterSinkWritesLines(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		Timestamp: time.Now().UTC(),
		EventType: auditEventLoginSuccess,
		UserID:    "u1",
		Provider:  "google",
		Success:   true,
	})

	line := strings.TrimSpace(buf.String())
	var decoded AuditEvent
	if err := json.Unmarshal([]byte(line), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.EventType != auditEventLoginSuccess || decoded.UserID != "u1" {
		t.Fatalf("unexpected decoded event %+v", decoded)
	}
}

func TestEngineEmitsAuditEvents(t *testing.T) {
	sink := NewChannelSink(32)

	cfg := testConfig()
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 32

	users := newMockUserStore()
	users.put(UserRecord{ID: "u1", Name: "Alice", Email: "alice@example.com"})

	engine, err := New().
		WithConfig(cfg).
		WithUserStore(users).
		WithVerifier(stubVerifier{
			name:   identity.Google,
			claims: map[string]identity.Claim{"assertion-alice": {Name: "Alice", Email: "alice@example.com"}},
		}).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	ctx := WithClientIP(context.Background(), "203.0.113.9")
	if _, err := engine.Login(ctx, identity.Google, "assertion-alice"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := engine.Login(ctx, identity.Google, "forged"); err == nil {
		t.Fatal("expected forged login to fail")
	}
	engine.Close()

	events := map[string]AuditEvent{}
	timeout := time.After(2 * time.Second)
	for len(events) < 2 {
		select {
		case ev := <-sink.Events():
			events[ev.EventType] = ev
		case <-timeout:
			t.Fatalf("expected login_success and identity_rejected events, got %v", events)
		}
	}

	success, ok := events[auditEventLoginSuccess]
	if !ok {
		t.Fatal("missing login_success event")
	}
	if !success.Success || success.UserID != "u1" || success.Provider != "google" {
		t.Fatalf("unexpected success event %+v", success)
	}
	if success.IP != "203.0.113.9" {
		t.Fatalf("expected client IP propagated, got %q", success.IP)
	}

	rejected, ok := events[auditEventIdentityRejected]
	if !ok {
		t.Fatal("missing identity_rejected event")
	}
	if rejected.Success {
		t.Fatal("rejection event marked successful")
	}
	if rejected.Error != string(auditErrIdentityRejected) {
		t.Fatalf("expected stable error code, got %q", rejected.Error)
	}
}
