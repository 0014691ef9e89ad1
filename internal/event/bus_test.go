package event

import (
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// trace subscribes a handler that appends label to *got on every delivery.
func trace(bus *Bus, eventType, label string, got *[]string) string {
	return bus.Subscribe(eventType, func(Event) { *got = append(*got, label) })
}

func TestBus_DeliveryOrder(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.SubscribeAll(func(Event) { got = append(got, "all") })
	trace(bus, TypeViewStateChanged, "view-1", &got)
	trace(bus, TypeSelectionChanged, "selection", &got)
	trace(bus, TypeViewStateChanged, "view-2", &got)

	bus.Publish(NewViewStateChangedEvent("Snapped", "Default"))

	want := []string{"view-1", "view-2", "all"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("delivery order mismatch (-want +got):\n%s", diff)
	}
}

func TestBus_PublishIsSynchronous(t *testing.T) {
	bus := NewBus()

	var received ViewStateChangedEvent
	bus.Subscribe(TypeViewStateChanged, func(e Event) {
		received = e.(ViewStateChangedEvent)
	})

	bus.Publish(NewViewStateChangedEvent("Default", "NoSensor"))

	if received.Current != "NoSensor" {
		t.Errorf("handler saw Current = %q before Publish returned, want NoSensor", received.Current)
	}
}

func TestBus_NoMatchingHandlers(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(TypeCatalogRebuilt, func(Event) {
		t.Error("catalog handler received a selection event")
	})

	bus.Publish(NewSelectionChangedEvent(0, 1, "Body"))
}

func TestBus_Unsubscribe(t *testing.T) {
	tests := []struct {
		name      string
		remove    func(ids []string) string
		wantFound bool
		want      []string
	}{
		{
			name:      "first of two",
			remove:    func(ids []string) string { return ids[0] },
			wantFound: true,
			want:      []string{"b", "all"},
		},
		{
			name:      "wildcard",
			remove:    func(ids []string) string { return ids[2] },
			wantFound: true,
			want:      []string{"a", "b"},
		},
		{
			name:      "unknown ID",
			remove:    func([]string) string { return "sub-999" },
			wantFound: false,
			want:      []string{"a", "b", "all"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bus := NewBus()
			var got []string
			ids := []string{
				trace(bus, TypeSurfaceAttached, "a", &got),
				trace(bus, TypeSurfaceAttached, "b", &got),
				bus.SubscribeAll(func(Event) { got = append(got, "all") }),
			}

			if found := bus.Unsubscribe(tt.remove(ids)); found != tt.wantFound {
				t.Errorf("Unsubscribe() = %v, want %v", found, tt.wantFound)
			}
			bus.Publish(NewSurfaceAttachedEvent("audio-1", "tech"))

			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("delivered mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestBus_UnsubscribeTwice(t *testing.T) {
	bus := NewBus()
	id := bus.Subscribe(TypeSurfaceStarted, func(Event) {})

	if !bus.Unsubscribe(id) {
		t.Fatal("first Unsubscribe() should find the subscription")
	}
	if bus.Unsubscribe(id) {
		t.Error("second Unsubscribe() should report false")
	}
	if n := bus.SubscriptionCount(); n != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", n)
	}
}

func TestBus_UnsubscribeDuringDelivery(t *testing.T) {
	bus := NewBus()
	var got []string
	var second string

	bus.Subscribe(TypePanelPropertyChanged, func(Event) {
		got = append(got, "first")
		bus.Unsubscribe(second)
	})
	second = trace(bus, TypePanelPropertyChanged, "second", &got)

	ev := NewPanelPropertyChangedEvent("body-1", PropertySelected, false, true)
	bus.Publish(ev)
	bus.Publish(ev)

	// The in-flight delivery still reaches the removed handler.
	want := []string{"first", "second", "first"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("delivered mismatch (-want +got):\n%s", diff)
	}
}

func TestBus_PublishFromHandler(t *testing.T) {
	bus := NewBus()
	var got []string

	bus.Subscribe(TypeSelectionChanged, func(Event) {
		got = append(got, "selection")
		bus.Publish(NewSurfaceAttachedEvent("rotation-1", "tech"))
	})
	trace(bus, TypeSurfaceAttached, "attached", &got)

	bus.Publish(NewSelectionChangedEvent(1, 2, "Rotation"))

	want := []string{"selection", "attached"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("delivered mismatch (-want +got):\n%s", diff)
	}
}

func TestBus_PanicIsReported(t *testing.T) {
	bus := NewBus()
	calls := 0

	bus.Subscribe(TypeInvariantRepaired, func(Event) {
		calls++
		panic("bad handler")
	})
	bus.Subscribe(TypeInvariantRepaired, func(Event) { calls++ })

	var reported any
	var reportedType string
	bus.SetPanicHandler(func(e Event, recovered any, stack []byte) {
		reported, reportedType = recovered, e.EventType()
		if len(stack) == 0 {
			t.Error("panic report should carry a stack")
		}
	})

	bus.Publish(NewInvariantRepairedEvent("depth-1", "tech", "evicted"))

	if calls != 2 {
		t.Errorf("handlers called %d times, want 2", calls)
	}
	if reported != "bad handler" || reportedType != TypeInvariantRepaired {
		t.Errorf("reported %v for %q", reported, reportedType)
	}
}

func TestBus_Clear(t *testing.T) {
	bus := NewBus()
	bus.Subscribe(TypeCameraModeChanged, func(Event) { t.Error("cleared handler called") })
	bus.SubscribeAll(func(Event) { t.Error("cleared wildcard handler called") })

	bus.Clear()
	bus.Publish(NewCameraModeChangedEvent("depth", "infrared"))

	if n := bus.SubscriptionCount(); n != 0 {
		t.Errorf("SubscriptionCount() = %d, want 0", n)
	}
	// The bus stays usable after Clear.
	called := false
	bus.Subscribe(TypeCameraModeChanged, func(Event) { called = true })
	bus.Publish(NewCameraModeChangedEvent("infrared", "color"))
	if !called {
		t.Error("handler registered after Clear was not called")
	}
}

func TestBus_UniqueIDs(t *testing.T) {
	bus := NewBus()
	seen := make(map[string]bool)
	for range 50 {
		id := bus.Subscribe(TypeSensorAvailability, func(Event) {})
		if seen[id] {
			t.Fatalf("duplicate subscription ID %q", id)
		}
		seen[id] = true
	}
}

func TestBus_Concurrent(t *testing.T) {
	bus := NewBus()

	var mu sync.Mutex
	delivered := 0
	bus.Subscribe(TypeSensorAvailability, func(Event) {
		mu.Lock()
		delivered++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := range 100 {
		wg.Go(func() {
			bus.Publish(NewSensorAvailabilityEvent("sess-1", i%2 == 0))
		})
		wg.Go(func() {
			id := bus.Subscribe(TypeCatalogRebuilt, func(Event) {})
			bus.Unsubscribe(id)
		})
	}
	wg.Wait()

	if delivered != 100 {
		t.Errorf("delivered %d events, want 100", delivered)
	}
	if n := bus.SubscriptionCount(); n != 1 {
		t.Errorf("SubscriptionCount() = %d, want 1", n)
	}
}
