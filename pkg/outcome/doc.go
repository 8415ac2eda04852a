/*
Package outcome resolves a completed answer tuple to a recommended occupation.

A Table maps the canonical key "{salaryImportance}-{personality}-{bloodTolerance}-{preferredSpecies}"
to an index into an ordered list of outcomes. Tables are validated once, when they are built:
every one of the 24 keys of the declared domains must be present, no key may fall outside
the domains and every index must point at an outcome. After that a Table is immutable and
safe for concurrent use.

Resolve never guesses: a tuple with a missing or out-of-domain value fails with
domain.ErrLookupMiss and the caller decides what to tell the user.
*/
package outcome
