/*
Package observability bridges engine lifecycle events into Prometheus metrics.

Metrics owns a set of collectors registered against a caller-supplied
registry and exposes them as domain.LifecycleHooks, so any engine can be
instrumented by passing the hooks at construction time.
*/
package observability
