// Package metrics defines the events emitted by planning runs and the sinks
// recording them. Sinks like PromSink record solves and rule validations and
// can be combined with NewMultiSink. The factory helpers return a MultiSink
// automatically when multiple sinks are configured.
package metrics
