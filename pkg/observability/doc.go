/*
Package observability exposes Prometheus metrics for conversions and dict storage.

Metrics live on a private registry so several servers (or tests) can coexist in
one process. Serve them with Handler.
*/
package observability
