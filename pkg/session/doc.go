/*
Package session implements session management and persistence orchestration.

It provides high-level abstractions for handling concurrent access to
browsing sessions across multiple replicas, integrating in-process locking
with distributed locking and long-term storage adapters.
*/
package session
