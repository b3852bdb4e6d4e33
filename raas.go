// Package raas provides a client for a remote Rendering-as-a-Service
// endpoint. Callers describe the page they want fetched with a FetchRequest;
// the service fetches (and optionally renders) it and the client translates
// the reply into a Result or a typed *Error.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, slog/, goquery/).
package raas
