// Package diagnostics keeps a bounded, persisted trail of API calls, API
// responses, errors and informational events for troubleshooting.
//
// A Collector is constructed explicitly and handed to whatever needs to
// record into it (the directory client, the email sender, the services and
// the REPL). Every append is written through to the key-value store under
// kv.KeyLogs and echoed to the structured logger.
//
// Reading: Entries for a snapshot, Text for the plain-text export format,
// RecentErrors for the tail of ERROR entries. Export writes Text to a
// timestamped file.
package diagnostics
