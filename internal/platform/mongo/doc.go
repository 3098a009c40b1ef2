// Package mongo provides the MongoDB implementation of store.TaskStore.
//
// Tasks live in a single collection. Documents carry the ObjectID in _id and
// the hex form of that ObjectID is the task ID seen by clients.
package mongo
