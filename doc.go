// Package jsonstore persists items as individual JSON files, one folder per
// item type, beneath a root folder:
//
//	<root>/<typeFolder>/<path>.json
//
// A Manager loads and saves whole type folders, merges new items into what
// is already on disk under an explicit collection.Policy, and keeps an
// optional read cache of one type folder.
//
// The cache is a read-side snapshot. Inserts always reload from storage and
// refresh the cache when it was enabled, but files written by another
// Manager or process are not seen until the next EnableCache or FlushCache.
//
// A Manager does not coordinate writers. Concurrent inserts into the same
// type folder, from this process or another, race file by file.
package jsonstore
