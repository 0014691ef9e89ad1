// Package event provides a pub-sub event bus for decoupled communication
// between the panel model, the coordinators and the TUI.
//
// # Main Types
//
//   - [Event]: Interface that all events must implement, providing EventType() and Timestamp()
//   - [Bus]: Synchronous pub-sub event dispatcher with thread-safe operations
//   - [Handler]: Function type for event handlers (func(Event))
//
// # Event Categories
//
// Panel model:
//   - [PanelPropertyChangedEvent]: a descriptor attribute was written
//   - [CatalogRebuiltEvent]: the panel catalog swapped its sequence
//   - [SelectionChangedEvent]: the live tech selection moved
//
// Attachment:
//   - [SurfaceAttachedEvent], [SurfaceDetachedEvent]: a surface changed slot
//   - [SurfaceStartedEvent]: a surface received the resume signal
//   - [InvariantRepairedEvent]: the coordinator corrected a bad attachment
//
// View:
//   - [ViewStateChangedEvent]: Default/Snapped/NoSensor/...Fullscreen changed
//   - [CameraModeChangedEvent]: the camera slot switched mode
//
// Sensor:
//   - [SensorAvailabilityEvent]: the device appeared or disappeared
//
// # Delivery
//
// Publish is synchronous: every handler has run when Publish returns. This is
// what the panel descriptors rely on to notify observers before a setter
// returns. A panicking handler is recovered and reported through the
// [PanicHandler] set with [Bus.SetPanicHandler] (the standard logger by
// default); the remaining handlers still run.
//
// # Basic Usage
//
//	bus := event.NewBus()
//
//	id := bus.Subscribe(event.TypeViewStateChanged, func(e event.Event) {
//	    changed := e.(event.ViewStateChangedEvent)
//	    fmt.Println(changed.Previous, "->", changed.Current)
//	})
//	defer bus.Unsubscribe(id)
//
//	bus.Publish(event.NewViewStateChangedEvent("Snapped", "Default"))
package event
