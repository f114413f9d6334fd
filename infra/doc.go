// Package infra contains technical adapters such as the constraint solver
// backend, the zerolog logger and Prometheus exporters. These packages
// should depend only on the interfaces defined in the core packages.
package infra
