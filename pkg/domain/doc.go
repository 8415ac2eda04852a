/*
Package domain contains the core domain models of the decision tree recommender.

It defines the fundamental entities of a dialog turn: the four answer categories, the
resolution outcome of each slot, the directive the dialog controller emits and the
recommended outcome. This package is kept pure and free of external dependencies
like I/O or persistence, following Hexagonal Architecture principles.

# Key Entities

  - Category: One of the four fixed answer dimensions (species, blood, personality, salary).
  - SlotResolution: The normalized result of entity resolution for a single slot.
  - TurnState: The transient view of a dialog turn (slots + completion flag).
  - Directive: What the dialog controller decided to do next.
  - Request/Response: The platform-neutral envelope exchanged with the voice platform.
*/
package domain
