package introspect

import "github.com/pkg/errors"

// Deserialize walks buffer against the schema registered for topicID,
// writing into flat (which is Reset first, so callers may reuse the same
// FlatMessage across many calls). It returns the number of bytes consumed.
// maxArraySize bounds how large an array may be before it must either use
// the blob fallback or fail with TooManyElements; see SPEC_FULL.md for the
// exact fallback rules.
func (r *Registry) Deserialize(topicID string, buffer []byte, flat *FlatMessage, maxArraySize int) (int, error) {
	schema, err := r.lookup(topicID)
	if err != nil {
		return 0, err
	}

	flat.Reset()
	flat.SchemaRef = topicID

	ds := &deserializeState{topicID: topicID, flat: flat, maxArraySize: maxArraySize}
	cur := newCursor(buffer)
	if err := ds.walkChildren(schema.Tree.Children, cur, nil); err != nil {
		return 0, err
	}
	return cur.pos, nil
}

// deserializeState bundles the parameters threaded unchanged through every
// level of the recursive walk, so the recursive signatures only vary in
// what actually changes per call: the node list, the cursor and the index
// stack.
type deserializeState struct {
	topicID      string
	flat         *FlatMessage
	maxArraySize int
}

func (ds *deserializeState) walkChildren(children []*StringTreeNode, cur *cursor, indices []int) error {
	for _, node := range children {
		if err := ds.walkField(node, cur, indices); err != nil {
			return errors.Wrap(err, "field "+node.Field.Name)
		}
	}
	return nil
}

func (ds *deserializeState) walkField(node *StringTreeNode, cur *cursor, indices []int) error {
	f := node.Field
	if f.Array == ArrayNone {
		return ds.walkScalarOrMessage(node, cur, indices)
	}
	return ds.walkArray(node, cur, indices)
}

func (ds *deserializeState) walkScalarOrMessage(node *StringTreeNode, cur *cursor, indices []int) error {
	f := node.Field
	if f.Type.IsBuiltin {
		if f.Type.Builtin == String {
			s, err := cur.readString()
			if err != nil {
				return err
			}
			ds.flat.appendName(renderPath(ds.topicID, node.template, indices), s)
			return nil
		}
		v, err := cur.readScalar(f.Type.Builtin)
		if err != nil {
			return err
		}
		ds.flat.appendValue(renderPath(ds.topicID, node.template, indices), v)
		return nil
	}
	return ds.walkChildren(node.Children, cur, indices)
}

// arrayLength reads (and consumes) the DYNAMIC length prefix if needed, or
// returns the FIXED declared length.
func arrayLength(f ROSField, cur *cursor) (int, error) {
	if f.Array == ArrayDynamic {
		return cur.readDynamicLength()
	}
	return f.ArrayLen, nil
}

func withIndex(indices []int, i int) []int {
	next := make([]int, len(indices)+1)
	copy(next, indices)
	next[len(indices)] = i
	return next
}

func (ds *deserializeState) walkArray(node *StringTreeNode, cur *cursor, indices []int) error {
	f := node.Field

	length, err := arrayLength(f, cur)
	if err != nil {
		return err
	}

	rawByteDynamic := f.Array == ArrayDynamic && f.Type.IsBuiltin && isRawByteKind(f.Type.Builtin)
	if rawByteDynamic {
		b, err := cur.take(length)
		if err != nil {
			return err
		}
		ds.flat.appendBlob(renderPath(ds.topicID, node.template, indices), b)
		return nil
	}

	if length > ds.maxArraySize {
		if f.Array == ArrayFixed && f.Type.IsBuiltin && f.Type.Builtin != String {
			b, err := cur.take(length * builtinWidth(f.Type.Builtin))
			if err != nil {
				return err
			}
			ds.flat.appendBlob(renderPath(ds.topicID, node.template, indices), b)
			return nil
		}
		return &TooManyElementsError{Limit: ds.maxArraySize, Seen: length}
	}

	for i := 0; i < length; i++ {
		elemIndices := withIndex(indices, i)
		if f.Type.IsBuiltin {
			if f.Type.Builtin == String {
				s, err := cur.readString()
				if err != nil {
					return err
				}
				ds.flat.appendName(renderPath(ds.topicID, node.template, elemIndices), s)
				continue
			}
			v, err := cur.readScalar(f.Type.Builtin)
			if err != nil {
				return err
			}
			ds.flat.appendValue(renderPath(ds.topicID, node.template, elemIndices), v)
			continue
		}
		if err := ds.walkChildren(node.Children, cur, elemIndices); err != nil {
			return err
		}
	}
	return nil
}

// VisitCallback receives a live, mutable window into the original buffer
// covering exactly one occurrence of the target type. It may rewrite bytes
// in place but must not change the occurrence's serialized length.
type VisitCallback func(raw []byte) error

// Visit walks buffer against topicID's schema and invokes callback once per
// occurrence of targetType (the root type itself, a field, or an element of
// an array of that type). See DESIGN.md for the measure-slice-callback-
// remeasure contract that guarantees conservation of bytes.
func (r *Registry) Visit(topicID string, targetType ROSType, buffer []byte, callback VisitCallback) error {
	schema, err := r.lookup(topicID)
	if err != nil {
		return err
	}

	if schema.RootType.Equal(targetType) {
		return remeasureAfter(schema.Tree.Children, buffer, callback)
	}

	cur := newCursor(buffer)
	return r.visitChildren(schema.Tree.Children, cur, targetType, callback)
}

func (r *Registry) visitChildren(children []*StringTreeNode, cur *cursor, targetType ROSType, callback VisitCallback) error {
	for _, node := range children {
		if err := r.visitField(node, cur, targetType, callback); err != nil {
			return errors.Wrap(err, "field "+node.Field.Name)
		}
	}
	return nil
}

func (r *Registry) visitField(node *StringTreeNode, cur *cursor, targetType ROSType, callback VisitCallback) error {
	f := node.Field
	if f.Array == ArrayNone {
		if f.Type.IsBuiltin {
			return skipScalar(cur, f.Type.Builtin)
		}
		if f.Type.Equal(targetType) {
			return r.visitOne(node, cur, callback)
		}
		return r.visitChildren(node.Children, cur, targetType, callback)
	}
	return r.visitArray(node, cur, targetType, callback)
}

func (r *Registry) visitArray(node *StringTreeNode, cur *cursor, targetType ROSType, callback VisitCallback) error {
	f := node.Field

	length, err := arrayLength(f, cur)
	if err != nil {
		return err
	}

	if f.Type.IsBuiltin {
		return skipArrayElements(cur, f, length)
	}

	matches := f.Type.Equal(targetType)
	for i := 0; i < length; i++ {
		if matches {
			if err := r.visitOne(node, cur, callback); err != nil {
				return err
			}
			continue
		}
		if err := r.visitChildren(node.Children, cur, targetType, callback); err != nil {
			return err
		}
	}
	return nil
}

// visitOne measures the byte extent of one occurrence of node's message
// type starting at the cursor's current position, hands the callback a
// mutable window over exactly those bytes, then re-measures the (possibly
// mutated) window to enforce the length-conservation invariant.
func (r *Registry) visitOne(node *StringTreeNode, cur *cursor, callback VisitCallback) error {
	start := cur.pos
	measure := &cursor{buf: cur.buf, pos: start}
	if err := skipChildren(node.Children, measure); err != nil {
		return err
	}
	length := measure.pos - start
	window := cur.buf[start : start+length]

	if err := remeasureAfter(node.Children, window, callback); err != nil {
		return err
	}
	cur.pos = start + length
	return nil
}

// remeasureAfter invokes callback on buf and then re-walks buf with
// skipChildren to confirm the callback did not change its serialized
// length -- the "remeasure" half of measure-slice-callback-remeasure.
func remeasureAfter(children []*StringTreeNode, buf []byte, callback VisitCallback) error {
	length := len(buf)
	if err := callback(buf); err != nil {
		return err
	}
	remeasure := &cursor{buf: buf}
	if err := skipChildren(children, remeasure); err != nil {
		return err
	}
	if remeasure.pos != length {
		return &TruncatedBufferError{Needed: length, Remaining: remeasure.pos}
	}
	return nil
}

// skipChildren and its helpers advance a cursor past a message's fields
// without producing any output; they back the visitor's measure/re-measure
// passes, which have no max_array_size policy to enforce.
func skipChildren(children []*StringTreeNode, cur *cursor) error {
	for _, node := range children {
		if err := skipField(node, cur); err != nil {
			return errors.Wrap(err, "field "+node.Field.Name)
		}
	}
	return nil
}

func skipField(node *StringTreeNode, cur *cursor) error {
	f := node.Field
	if f.Array == ArrayNone {
		if f.Type.IsBuiltin {
			return skipScalar(cur, f.Type.Builtin)
		}
		return skipChildren(node.Children, cur)
	}
	length, err := arrayLength(f, cur)
	if err != nil {
		return err
	}
	if f.Type.IsBuiltin {
		return skipArrayElements(cur, f, length)
	}
	for i := 0; i < length; i++ {
		if err := skipChildren(node.Children, cur); err != nil {
			return err
		}
	}
	return nil
}

func skipScalar(cur *cursor, kind BuiltinKind) error {
	if kind == String {
		_, err := cur.readString()
		return err
	}
	_, err := cur.readScalar(kind)
	return err
}

func skipArrayElements(cur *cursor, f ROSField, length int) error {
	if isRawByteKind(f.Type.Builtin) && f.Array == ArrayDynamic {
		_, err := cur.take(length)
		return err
	}
	if f.Type.Builtin == String {
		for i := 0; i < length; i++ {
			if _, err := cur.readString(); err != nil {
				return err
			}
		}
		return nil
	}
	_, err := cur.take(length * builtinWidth(f.Type.Builtin))
	return err
}
