// Package archive persists navigation history snapshots.
//
// A Snapshot captures a session's entries and cursor at a point in
// time. Snapshots are stored through the Store interface; DiskStore
// keeps them as JSON files, S3Store keeps them as S3 objects.
//
// A Recorder tails a live session and keeps its snapshot in the store
// up to date:
//
//	store, _ := archive.NewDiskStore(".wayfind/archive")
//	rec := archive.Record(sess, store, "main")
//	defer rec.Close()
//
// Entry state travels through JSON, so restored state values carry
// JSON types (numbers come back as float64).
package archive
