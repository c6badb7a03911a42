package introspect

import "strings"

// pathComponent is one segment of a precomputed root-to-node path template.
// isArray marks a segment whose rendered form consumes one runtime index
// (".N") as long as an index is still available on the walker's indices
// stack; once indices run out the segment renders plain. This is what lets
// the same template serve both "array of scalars" (one index per leaf) and
// the blob-fallback case (the array's own trailing index is never supplied,
// so the blob's path has no ".N" suffix).
type pathComponent struct {
	name    string
	isArray bool
}

// StringTreeNode is one node of the schema's compiled field tree: one node
// per field declaration (not per instance), built once at registration and
// never mutated afterwards so it can be shared across concurrent
// deserializations of the same schema.
type StringTreeNode struct {
	Field    ROSField
	Children []*StringTreeNode
	template []pathComponent
}

// buildStringTree compiles msg (and everything it reaches) into a tree of
// StringTreeNodes rooted at a synthetic node for msg itself. visiting
// detects cycles: a user type that (transitively, including through array
// fields) refers back to an ancestor is rejected with
// RecursiveDefinitionError, since such a schema has no finite traversal
// plan.
func buildStringTree(rootType ROSType, messages map[string]*ROSMessage, visiting map[string]bool) (*StringTreeNode, error) {
	key := rootType.String()
	if visiting[key] {
		return nil, &RecursiveDefinitionError{Type: key}
	}
	visiting[key] = true
	defer delete(visiting, key)

	msg, ok := messages[key]
	if !ok {
		return nil, &UnresolvedTypeError{Name: key}
	}

	root := &StringTreeNode{Field: ROSField{Type: rootType, Name: ""}}
	for _, f := range msg.Fields {
		if f.IsConstant {
			continue
		}
		child, err := buildFieldNode(f, messages, visiting)
		if err != nil {
			return nil, err
		}
		root.Children = append(root.Children, child)
	}
	return root, nil
}

func buildFieldNode(f ROSField, messages map[string]*ROSMessage, visiting map[string]bool) (*StringTreeNode, error) {
	node := &StringTreeNode{Field: f}
	node.template = []pathComponent{{name: f.Name, isArray: f.Array != ArrayNone}}

	if f.Type.IsBuiltin {
		return node, nil
	}

	sub, err := buildStringTree(f.Type, messages, visiting)
	if err != nil {
		return nil, err
	}
	// sub is a synthetic root whose children belong to f's message type;
	// attach them directly so the field's own node is the join point, and
	// prefix each descendant's template with this field's component.
	node.Children = sub.Children
	prefixChildren(node, node.template)
	return node, nil
}

// prefixChildren prepends prefix to every descendant node's template,
// recursively. Called once per field at registration time; templates are
// immutable afterwards.
func prefixChildren(node *StringTreeNode, prefix []pathComponent) {
	for _, c := range node.Children {
		extended := make([]pathComponent, 0, len(prefix)+len(c.template))
		extended = append(extended, prefix...)
		extended = append(extended, c.template...)
		c.template = extended
		prefixChildren(c, prefix)
	}
}

// renderPath consumes indices front-to-back, one per isArray template
// component, rendering the remaining components without an index once
// indices is exhausted. Each component's name is joined with "/", and a
// consumed index is appended as ".N" directly onto the owning component's
// name before the next "/". topicID is rendered as the leading path
// segment, matching the reference implementation's
// "<topic_id>/<field>/.../<field>" convention.
func renderPath(topicID string, template []pathComponent, indices []int) string {
	var b strings.Builder
	b.WriteString(topicID)
	idx := 0
	for _, c := range template {
		b.WriteByte('/')
		b.WriteString(c.name)
		if c.isArray && idx < len(indices) {
			b.WriteByte('.')
			writeInt(&b, indices[idx])
			idx++
		}
	}
	return b.String()
}

func writeInt(b *strings.Builder, n int) {
	if n == 0 {
		b.WriteByte('0')
		return
	}
	if n < 0 {
		b.WriteByte('-')
		n = -n
	}
	var digits [20]byte
	p := len(digits)
	for n > 0 {
		p--
		digits[p] = byte('0' + n%10)
		n /= 10
	}
	b.Write(digits[p:])
}
