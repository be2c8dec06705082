// Package testutil provides testing utilities for querycache.
//
// This package is intended for use in tests and benchmarks only.
// It provides a seeded random generator for document keys and target
// changes, and a collector that records every garbage notification.
//
// # Random Target Changes
//
//	rng := testutil.NewRNG(seed)
//	docs := testutil.Universe("rooms", 64)
//	change := rng.TargetChange(docs, current, 8, version)
//
// # Recording Notifications
//
//	rec := testutil.NewRecordingCollector()
//	cache.SetGarbageCollector(rec)
//	// ...
//	rec.Count(key) // number of notifications for key
package testutil
