// Package collection treats a folder of independent JSON files as one
// logical collection.
//
// Three pieces work together:
//   - Loader reads every *.json file beneath a type folder into core.Items.
//   - Writer writes core.Items back to their per-item files.
//   - Merge decides which items a save set holds when new items meet the
//     ones already on disk, under an explicit Policy.
//
// Writes are independent per file. If writing item N fails, items 0..N-1
// stay written; nothing is rolled back. Collisions during a merge are never
// errors: they are resolved by the Policy and reported in the Plan counts.
//
// Nothing here coordinates concurrent writers. Two callers saving into the
// same type folder at the same time race file by file.
package collection
