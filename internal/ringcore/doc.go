// Package ringcore is the per-node coordination and replication engine of
// ringstore: consistent-hash placement, ring membership tracking, a
// quorum-based client coordinator, the storage-side CRUD handler, and the
// stabilization protocol that re-replicates keys after a membership change.
//
// Everything outside these four concerns — the transport, the local storage
// engine, the membership feed, and the logger — is an external collaborator
// supplied through the interfaces in collaborators.go. Core itself never
// blocks and never spawns a goroutine: a host scheduler drives it one Tick
// at a time.
package ringcore
