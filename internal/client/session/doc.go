// Package session owns the client's single Session and the transitions
// between its two states.
//
//	Unauthenticated --Login--> Authenticated
//	Authenticated --Logout/Expire--> Unauthenticated
//
// Login persists the token before the state changes, so nobody observes
// Authenticated for a token that was not stored. Logout always ends
// Unauthenticated, even when the credential store fails to delete.
//
// Presentation code reads the session through Snapshot, Token,
// IsAuthenticated and Subscribe; only the Controller writes it.
package session
