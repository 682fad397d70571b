// Package credstore persists the session token across process restarts.
//
// The token is written redundantly to two backends addressed by the same
// fixed key: a primary, encrypted backend (see repositories/vault) and a
// secondary, plain backend (see repositories/metadata). Reads prefer the
// primary and fall back to the secondary.
//
// # Consistency
//
// Save writes the secondary first and the primary second. If the primary
// write fails the secondary is restored to its previous value, so a failed
// Save leaves both backends as they were. Clear deletes from both and is
// idempotent. All three operations are serialised by a mutex; there is no
// atomicity across the two backends beyond that.
package credstore
