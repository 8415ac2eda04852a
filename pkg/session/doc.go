/*
Package session keeps the per-session audit records of the skill.

The voice platform owns the dialog state; the Manager only mirrors it into a
SessionStore. Updates for one session are serialized in-process and, when a
DistributedLocker is configured, across replicas.
*/
package session
