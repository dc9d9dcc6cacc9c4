// Package importer bulk-loads a JSON array document into a type folder.
//
// Every element of the array becomes one item. Its identity comes from a
// gjson path into the element or, when the path is empty or matches
// nothing, from a hash of the element. Elements are merged into the folder
// in batches under a collection.Policy, with progress written to an
// io.Writer.
package importer
