package cebtree

import (
	"fmt"
	"reflect"

	"github.com/cebtree/cebtree/pkg/cebtree/node"
	"github.com/cebtree/cebtree/pkg/opt"
	"github.com/cebtree/cebtree/pkg/xunsafe"
)

// Node is the node slot callers embed in their element structs to make
// them tree-resident. The zero value is detached.
type Node = node.Slot

// LayoutError reports that a payload type does not have the shape a typed
// view requires: no embedded [Node], a missing key field, or a key field
// of the wrong type for the view's key kind.
type LayoutError struct {
	Type   reflect.Type
	Field  string
	Reason string
}

func (e *LayoutError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("cebtree: %s: %s", e.Type, e.Reason)
	}
	return fmt.Sprintf("cebtree: %s: field %q: %s", e.Type, e.Field, e.Reason)
}

// View is a strongly typed facade over a [Tree]: elements are *T instead
// of raw *[Node], with the node-slot and key-field offsets resolved once,
// at construction, from T's own layout. The raw offset-based constructors
// (NewU32 and friends) remain for layouts reflection cannot see, such as
// keys living behind the element in caller-managed storage.
type View[T any, K any] struct {
	tree *Tree[K]
	nofs uintptr
}

// Tree returns the underlying untyped tree.
func (v *View[T, K]) Tree() *Tree[K] { return v.tree }

// Empty reports whether the view currently holds no elements.
func (v *View[T, K]) Empty() bool { return v.tree.Empty() }

func (v *View[T, K]) slot(e *T) *Node {
	if e == nil {
		return nil
	}
	return xunsafe.ByteAdd[Node](e, v.nofs)
}

func (v *View[T, K]) elem(s *Node) *T {
	if s == nil {
		return nil
	}
	return xunsafe.ByteAdd[T](s, -int(v.nofs))
}

// Insert places e into the tree. It returns e on success; in unique mode
// an already-resident key returns the resident element instead, and e is
// left untouched.
func (v *View[T, K]) Insert(e *T) *T {
	r := v.tree.Insert(v.slot(e))
	if r.HasLeft() {
		return v.elem(r.UnwrapLeft())
	}
	return v.elem(r.UnwrapRight())
}

// Lookup returns the oldest resident element for key, or nil.
func (v *View[T, K]) Lookup(key K) *T { return v.elem(v.tree.Lookup(key)) }

// Get is [View.Lookup] with an explicit presence bit instead of a nil
// pointer, for callers chaining through [opt.Option] combinators.
func (v *View[T, K]) Get(key K) opt.Option[*T] {
	if e := v.Lookup(key); e != nil {
		return opt.Some(e)
	}
	return opt.None[*T]()
}

// LookupGE returns the smallest resident with key >= key, or nil.
func (v *View[T, K]) LookupGE(key K) *T { return v.elem(v.tree.LookupGE(key)) }

// LookupGT returns the smallest resident with key > key, or nil.
func (v *View[T, K]) LookupGT(key K) *T { return v.elem(v.tree.LookupGT(key)) }

// LookupLE returns the largest resident with key <= key, or nil.
func (v *View[T, K]) LookupLE(key K) *T { return v.elem(v.tree.LookupLE(key)) }

// LookupLT returns the largest resident with key < key, or nil.
func (v *View[T, K]) LookupLT(key K) *T { return v.elem(v.tree.LookupLT(key)) }

// First returns the smallest-keyed resident, or nil.
func (v *View[T, K]) First() *T { return v.elem(v.tree.First()) }

// Last returns the largest-keyed resident, or nil.
func (v *View[T, K]) Last() *T { return v.elem(v.tree.Last()) }

// Next returns the element immediately after e in ascending key order.
func (v *View[T, K]) Next(e *T) *T { return v.elem(v.tree.Next(v.slot(e))) }

// Prev returns the element immediately before e in ascending key order.
func (v *View[T, K]) Prev(e *T) *T { return v.elem(v.tree.Prev(v.slot(e))) }

// NextDup returns the next element sharing e's key, or nil.
func (v *View[T, K]) NextDup(e *T) *T { return v.elem(v.tree.NextDup(v.slot(e))) }

// PrevDup returns the previous element sharing e's key, or nil.
func (v *View[T, K]) PrevDup(e *T) *T { return v.elem(v.tree.PrevDup(v.slot(e))) }

// NextUnique returns the first element of the next distinct key, or nil.
func (v *View[T, K]) NextUnique(e *T) *T { return v.elem(v.tree.NextUnique(v.slot(e))) }

// PrevUnique returns the last element of the previous distinct key, or nil.
func (v *View[T, K]) PrevUnique(e *T) *T { return v.elem(v.tree.PrevUnique(v.slot(e))) }

// Delete removes e, returning it, or nil if e was not resident.
func (v *View[T, K]) Delete(e *T) *T { return v.elem(v.tree.Delete(v.slot(e))) }

// Pick detaches and returns the oldest element resident under key, or nil.
func (v *View[T, K]) Pick(key K) *T { return v.elem(v.tree.Pick(key)) }

// fieldsOf resolves T's embedded Node offset and the named key field.
func fieldsOf[T any](keyField string) (nofs, kofs uintptr, ft reflect.Type, err error) {
	rt := reflect.TypeFor[T]()
	nofs, err = nodeOffset(rt)
	if err != nil {
		return 0, 0, nil, err
	}
	sf, ok := rt.FieldByName(keyField)
	if !ok {
		return 0, 0, nil, &LayoutError{Type: rt, Field: keyField, Reason: "no such field"}
	}
	// The engine addresses keys relative to the node slot; a key field
	// declared before it simply yields an offset that wraps, which the
	// unscaled pointer arithmetic undoes on every read.
	return nofs, sf.Offset - nofs, sf.Type, nil
}

func nodeOffset(rt reflect.Type) (uintptr, error) {
	if rt.Kind() != reflect.Struct {
		return 0, &LayoutError{Type: rt, Reason: "element type must be a struct"}
	}
	nodeType := reflect.TypeFor[Node]()
	for i := 0; i < rt.NumField(); i++ {
		if f := rt.Field(i); f.Type == nodeType {
			return f.Offset, nil
		}
	}
	return 0, &LayoutError{Type: rt, Reason: "no cebtree.Node field"}
}

// U32ViewOf builds a [View] over T keyed by its named uint32 field.
func U32ViewOf[T any](keyField string, multi bool) (*View[T, uint32], error) {
	nofs, kofs, ft, err := fieldsOf[T](keyField)
	if err != nil {
		return nil, err
	}
	if ft.Kind() != reflect.Uint32 {
		return nil, &LayoutError{Type: reflect.TypeFor[T](), Field: keyField, Reason: "key field must be uint32"}
	}
	return &View[T, uint32]{tree: NewU32(kofs, multi), nofs: nofs}, nil
}

// U64ViewOf builds a [View] over T keyed by its named uint64 field.
func U64ViewOf[T any](keyField string, multi bool) (*View[T, uint64], error) {
	nofs, kofs, ft, err := fieldsOf[T](keyField)
	if err != nil {
		return nil, err
	}
	if ft.Kind() != reflect.Uint64 {
		return nil, &LayoutError{Type: reflect.TypeFor[T](), Field: keyField, Reason: "key field must be uint64"}
	}
	return &View[T, uint64]{tree: NewU64(kofs, multi), nofs: nofs}, nil
}

// UWordViewOf builds a [View] over T keyed by its named word-sized
// unsigned field (uint or uintptr).
func UWordViewOf[T any](keyField string, multi bool) (*View[T, uintptr], error) {
	nofs, kofs, ft, err := fieldsOf[T](keyField)
	if err != nil {
		return nil, err
	}
	if k := ft.Kind(); k != reflect.Uint && k != reflect.Uintptr {
		return nil, &LayoutError{Type: reflect.TypeFor[T](), Field: keyField, Reason: "key field must be uint or uintptr"}
	}
	return &View[T, uintptr]{tree: NewUWord(kofs, multi), nofs: nofs}, nil
}

// AddrViewOf builds a [View] over T keyed by each element's own storage
// address. T needs no key field at all.
func AddrViewOf[T any]() (*View[T, uintptr], error) {
	nofs, err := nodeOffset(reflect.TypeFor[T]())
	if err != nil {
		return nil, err
	}
	return &View[T, uintptr]{tree: NewAddr(false), nofs: nofs}, nil
}

// BytesViewOf builds a [View] over T keyed by its named [N]byte field,
// compared as a fixed-length byte block.
func BytesViewOf[T any](keyField string, multi bool) (*View[T, []byte], error) {
	nofs, kofs, ft, err := byteArrayField[T](keyField)
	if err != nil {
		return nil, err
	}
	return &View[T, []byte]{tree: NewBytes(kofs, ft.Len(), multi), nofs: nofs}, nil
}

// StringViewOf builds a [View] over T keyed by its named [N]byte field,
// compared as a NUL-terminated string. The caller keeps at least one
// terminating zero byte inside the array.
func StringViewOf[T any](keyField string, multi bool) (*View[T, []byte], error) {
	nofs, kofs, _, err := byteArrayField[T](keyField)
	if err != nil {
		return nil, err
	}
	return &View[T, []byte]{tree: NewString(kofs, multi), nofs: nofs}, nil
}

// IndirectBytesViewOf builds a [View] over T keyed by length bytes behind
// its named *byte field.
func IndirectBytesViewOf[T any](keyField string, length int, multi bool) (*View[T, []byte], error) {
	nofs, kofs, err := bytePointerField[T](keyField)
	if err != nil {
		return nil, err
	}
	if length <= 0 {
		return nil, &ConfigError{Param: "length", Value: length}
	}
	return &View[T, []byte]{tree: NewIndirectBytes(kofs, length, multi), nofs: nofs}, nil
}

// IndirectStringViewOf builds a [View] over T keyed by the NUL-terminated
// string behind its named *byte field.
func IndirectStringViewOf[T any](keyField string, multi bool) (*View[T, []byte], error) {
	nofs, kofs, err := bytePointerField[T](keyField)
	if err != nil {
		return nil, err
	}
	return &View[T, []byte]{tree: NewIndirectString(kofs, multi), nofs: nofs}, nil
}

func byteArrayField[T any](keyField string) (nofs, kofs uintptr, ft reflect.Type, err error) {
	nofs, kofs, ft, err = fieldsOf[T](keyField)
	if err != nil {
		return 0, 0, nil, err
	}
	if ft.Kind() != reflect.Array || ft.Elem().Kind() != reflect.Uint8 {
		return 0, 0, nil, &LayoutError{Type: reflect.TypeFor[T](), Field: keyField, Reason: "key field must be a byte array"}
	}
	return nofs, kofs, ft, nil
}

func bytePointerField[T any](keyField string) (nofs, kofs uintptr, err error) {
	nofs, kofs, ft, err := fieldsOf[T](keyField)
	if err != nil {
		return 0, 0, err
	}
	if ft.Kind() != reflect.Pointer || ft.Elem().Kind() != reflect.Uint8 {
		return 0, 0, &LayoutError{Type: reflect.TypeFor[T](), Field: keyField, Reason: "key field must be *byte"}
	}
	return nofs, kofs, nil
}
