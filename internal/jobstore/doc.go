// Package jobstore persists export jobs in SQLite.
//
// Every export session records its phase, progress, warnings, and the last
// completed frame batch. The batch marker is what makes an interrupted export
// resumable: on restart the orchestrator skips batches the store already
// acknowledges. `montage jobs` reads the same table for operator visibility.
package jobstore
