// Package msgs defines the telemetry events a board publishes.
//
// Every event is wrapped in a Typed envelope carrying the type ID, the
// publishing session and a per-session sequence number.
//
// Producer: board (telemetry publisher)
// Consumer: monitors
package msgs
