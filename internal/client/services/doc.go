// Package services contains application services for the Elementopia client.
//
// Each service translates a domain operation into a gateway call and
// rewraps gateway failures into a domain error carrying a message fit for
// display. None of them touch the session or the credential store.
package services
