/*
Package ports defines the driven ports (interfaces) for the generation engine.

These interfaces decouple the core logic from external implementations, allowing
the engine to work with various persistence backends.

# Key Interfaces

  - RunStore: Responsible for persisting runs parked on clarification questions.
  - RunLocker: Provides distributed locking for concurrent resume attempts.
*/
package ports
