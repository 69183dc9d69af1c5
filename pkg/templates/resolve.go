// Package templates turns the declarative template list of a build
// configuration into the keyed set of pending source tree operations.
package templates

import (
	"github.com/arthur-debert/stmdeploy/pkg/types"
)

// Operation is a pending action on the source tree
type Operation struct {
	Key   string
	Entry types.TemplateEntry
}

// Operations is an insertion-ordered set of operations keyed by operation
// key. Adding an existing key replaces its entry but keeps its position.
type Operations struct {
	order []string
	byKey map[string]types.TemplateEntry
}

// Resolve builds the operation set of a template list. It performs no I/O.
func Resolve(entries []types.TemplateEntry) *Operations {
	ops := &Operations{byKey: make(map[string]types.TemplateEntry, len(entries))}
	for _, entry := range entries {
		ops.add(entry.Key(), entry)
	}
	return ops
}

func (o *Operations) add(key string, entry types.TemplateEntry) {
	if _, exists := o.byKey[key]; !exists {
		o.order = append(o.order, key)
	}
	o.byKey[key] = entry
}

// Len returns the number of distinct keys
func (o *Operations) Len() int {
	return len(o.order)
}

// Keys returns the operation keys in insertion order
func (o *Operations) Keys() []string {
	return append([]string(nil), o.order...)
}

// Get returns the entry registered for key
func (o *Operations) Get(key string) (types.TemplateEntry, bool) {
	entry, ok := o.byKey[key]
	return entry, ok
}

// List returns the operations in insertion order
func (o *Operations) List() []Operation {
	list := make([]Operation, 0, len(o.order))
	for _, key := range o.order {
		list = append(list, Operation{Key: key, Entry: o.byKey[key]})
	}
	return list
}
