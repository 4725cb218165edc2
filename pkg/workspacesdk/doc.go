// Package workspacesdk provides a Go client for the HiveDesk workspace
// service, together with the request and response types the service speaks.
// The server-side handlers reuse these types so the wire contract lives in
// exactly one place.
package workspacesdk
