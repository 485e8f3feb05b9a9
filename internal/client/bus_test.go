package client

import "testing"

func TestBusFanOutOrder(t *testing.T) {
	bus := NewEventBus()

	var got []string
	bus.OnLog(func(line string) { got = append(got, "first:"+line) })
	bus.OnLog(func(line string) { got = append(got, "second:"+line) })

	bus.publishLog("SYS: hello")

	if len(got) != 2 {
		t.Fatalf("handlers fired = %d, want 2", len(got))
	}
	if got[0] != "first:SYS: hello" || got[1] != "second:SYS: hello" {
		t.Errorf("dispatch order = %v, want subscription order", got)
	}
}

func TestBusUnsubscribe(t *testing.T) {
	bus := NewEventBus()

	var a, b int
	subA := bus.OnConnectivity(func(bool) { a++ })
	bus.OnConnectivity(func(bool) { b++ })

	bus.publishConnectivity(true)
	bus.Unsubscribe(subA)
	bus.publishConnectivity(false)

	if a != 1 {
		t.Errorf("removed handler fired %d times, want 1", a)
	}
	if b != 2 {
		t.Errorf("remaining handler fired %d times, want 2", b)
	}
}

func TestBusUnsubscribeUnknownIDIsNoop(t *testing.T) {
	bus := NewEventBus()
	fired := 0
	bus.OnAck(func(string) { fired++ })

	bus.Unsubscribe(Subscription(999))
	bus.publishAck("ok")

	if fired != 1 {
		t.Errorf("handler fired %d times, want 1", fired)
	}
}
