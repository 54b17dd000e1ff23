/*
Package ports defines the driven ports (interfaces) for the Arbor engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various document sources, session stores, and lock
providers.

# Key Interfaces

  - TreeSource: Responsible for loading nested outline documents (e.g., from files or Memory).
  - StateStore: Responsible for persisting and loading session State.
  - DistributedLocker: Provides distributed locking for handling concurrent session access.
*/
package ports
