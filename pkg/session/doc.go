// Package session provides pluggable snapshot stores for live sessions:
// the last rendered markup per session, served read-only to a page
// request that names a session which is no longer live. Such a client
// does not reattach to a live session. The in-memory store is the
// default; the bbolt store survives server restarts.
package session
