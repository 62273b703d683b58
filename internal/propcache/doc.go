// Package propcache is the memoization layer of the engine.
//
// Props move through Unresolved → Resolved → Fresh ⇄ Stale. A value can only
// be read while Fresh; every accessor checks the status and panics otherwise.
// State and String leaves are created Fresh and stay Fresh.
//
// Each stored value bumps a change counter. Readers pass an origin node and
// the cache remembers, per origin, the counter it last handed out, which is
// how "changed since I last looked" works for props and renderers alike.
package propcache
