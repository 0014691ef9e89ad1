// Package sensor models the motion-sensor session the shell consumes.
//
// A [Session] exposes open/close, availability with change notification, and
// one [Source] per [Modality]. Decoding of real device frames is out of scope:
// sources produce synthetic readings so that the surfaces have something to
// draw. Two implementations exist:
//
//   - [Simulated]: availability is controlled by the caller or flaps on a
//     timer. Used by tests and the default "simulated" driver.
//   - [Serial]: availability follows the presence of a serial port (polled
//     with go.bug.st/serial); the port is held open while present.
//
// Availability callbacks fire on background goroutines. Consumers must
// marshal them onto their own coordinating goroutine before touching state.
package sensor
