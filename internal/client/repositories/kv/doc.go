// Package kv provides the durable key-value storage behind the warranty
// store and the preference service.
//
// # Overview
//
// Repository is a tiny byte-oriented key-value contract. Values are opaque
// blobs; callers decide the encoding (JSON documents in practice).
//
// Two implementations exist:
//
//   - SQLiteRepository stores rows in the kv table of the local SQLite
//     database (see internal/client/db for bootstrap and migrations).
//   - FileRepository stores one <key>.json file per key in a directory and
//     replaces files atomically. Its Watch method reports foreign writes,
//     which is how two app instances sharing one directory get noticed.
//
// # Concurrency
//
// Both implementations are safe for concurrent use. Neither coordinates
// between processes: the last writer wins.
//
// Typical Usage
//
//	repo := kv.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "warranty-storage", blob)
//	blob, _ := repo.Get(ctx, "warranty-storage") // nil, nil when absent
package kv
