package domain

import "errors"

// ErrUpstreamContract is returned when the resolution collaborator sends data the
// core cannot trust (an ambiguous slot without candidates, a missing required slot).
var ErrUpstreamContract = errors.New("upstream contract violation")

// ErrLookupMiss is returned when an answer tuple has no entry in the outcome table.
var ErrLookupMiss = errors.New("outcome lookup miss")

// ErrUnrecognizedRequest is returned when no handler accepts an inbound request.
var ErrUnrecognizedRequest = errors.New("unrecognized request")

// ErrSessionNotFound is returned when a session ID cannot be found in the store.
var ErrSessionNotFound = errors.New("session not found")
