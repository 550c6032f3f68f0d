// Package typename contains internal helpers for type identity:
// stable display names and embedded-ancestor discovery.
package typename

import (
	"path"
	"reflect"
	"strings"
	"sync"
)

// maxDepth caps pointer unwrapping and the embedded-field walk.
// A value of 8 should be sufficient for all practical purposes.
const maxDepth = 8

// nameCache memoizes display names per type. Type structure is immutable,
// so entries never need invalidation.
var nameCache sync.Map // reflect.Type -> string

// ancCache memoizes embedded-ancestor lists per struct type.
var ancCache sync.Map // reflect.Type -> []reflect.Type

// Of returns a stable "pkg.Type" display name for t, unwrapping pointers
// and stripping generic instantiation parameters ("T[int]" -> "T").
// Unnamed types (anonymous structs, builtins without a package) yield "".
func Of(t reflect.Type) string {
	t = Indirect(t)
	if t == nil {
		return ""
	}
	if v, ok := nameCache.Load(t); ok {
		return v.(string)
	}

	name := stripTypeParams(t.Name())
	if name != "" {
		if p := t.PkgPath(); p != "" {
			name = path.Base(p) + "." + name
		}
	}

	nameCache.Store(t, name)
	return name
}

// Indirect unwraps pointer types down to the pointed-to type.
func Indirect(t reflect.Type) reflect.Type {
	for i := 0; t != nil && t.Kind() == reflect.Ptr && i < maxDepth; i++ {
		t = t.Elem()
	}
	return t
}

// EmbeddedAncestors returns the named struct types embedded in t, directly
// or transitively, in breadth-first order: the shallowest embedding comes
// first, which is what "nearest ancestor" means for lookup. Pointer embeds
// are unwrapped. Non-struct types have no ancestors.
func EmbeddedAncestors(t reflect.Type) []reflect.Type {
	t = Indirect(t)
	if t == nil || t.Kind() != reflect.Struct {
		return nil
	}
	if v, ok := ancCache.Load(t); ok {
		return v.([]reflect.Type)
	}

	var out []reflect.Type
	seen := map[reflect.Type]bool{t: true}
	level := []reflect.Type{t}

	for depth := 0; depth < maxDepth && len(level) > 0; depth++ {
		var next []reflect.Type
		for _, cur := range level {
			for i := 0; i < cur.NumField(); i++ {
				f := cur.Field(i)
				if !f.Anonymous {
					continue
				}
				ft := Indirect(f.Type)
				if ft == nil || ft.Kind() != reflect.Struct || ft.Name() == "" || seen[ft] {
					continue
				}
				seen[ft] = true
				out = append(out, ft)
				next = append(next, ft)
			}
		}
		level = next
	}

	ancCache.Store(t, out)
	return out
}

// stripTypeParams removes the generic instantiation suffix: "T[int,string]" -> "T".
func stripTypeParams(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		return s[:i]
	}
	return s
}
