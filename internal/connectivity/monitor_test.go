package connectivity

import "testing"

func TestMonitor_EdgeCallbacks(t *testing.T) {
	m := NewMonitor(false)

	var onlineCalls, offlineCalls int
	m.OnOnline(func() { onlineCalls++ })
	m.OnOffline(func() { offlineCalls++ })

	m.SetOnline(true)
	if onlineCalls != 1 || offlineCalls != 0 {
		t.Fatalf("after going online: (%d, %d), want (1, 0)", onlineCalls, offlineCalls)
	}
	if !m.Online() {
		t.Fatal("Online() = false, want true")
	}

	m.SetOnline(false)
	if onlineCalls != 1 || offlineCalls != 1 {
		t.Fatalf("after going offline: (%d, %d), want (1, 1)", onlineCalls, offlineCalls)
	}
}

func TestMonitor_NoCallbackWithoutTransition(t *testing.T) {
	m := NewMonitor(true)

	var onlineCalls int
	m.OnOnline(func() { onlineCalls++ })

	m.SetOnline(true)
	m.SetOnline(true)
	if onlineCalls != 0 {
		t.Fatalf("callbacks fired %d times without a transition, want 0", onlineCalls)
	}
}

func TestMonitor_CallbacksRunInRegistrationOrder(t *testing.T) {
	m := NewMonitor(false)

	var order []string
	m.OnOnline(func() { order = append(order, "sync") })
	m.OnOnline(func() { order = append(order, "reload") })

	m.SetOnline(true)
	if len(order) != 2 || order[0] != "sync" || order[1] != "reload" {
		t.Fatalf("order = %v, want [sync reload]", order)
	}
}
