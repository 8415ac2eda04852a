/*
Package ports defines the driven ports (interfaces) of the decision tree skill.

These interfaces decouple the dialog core from storage backends so that the
session audit trail can live in memory, on disk or in Redis.

# Key Interfaces

  - SessionStore: persists and loads SessionRecords.
  - DistributedLocker: coordinates concurrent access to one session across replicas.
*/
package ports
