package introspect

import "strconv"

// RenameRule ties an array field to a parallel array of strings that gives
// each element a human-readable name: for message type rooted at Prefix,
// element i of ArrayField is renamed to the string at element i of
// NameField (see spec.md §4.H). Prefix is "" for a root-level field pair, or
// the dotted/slashed path of the enclosing sub-message for a nested pair.
type RenameRule struct {
	Prefix     string
	ArrayField string
	NameField  string
}

// RenamedEntry is one (path, value) pair produced by ApplyNameTransform.
type RenamedEntry struct {
	Path  string
	Value Variant
}

func fieldBase(prefix, field string) string {
	if prefix == "" {
		return field
	}
	return prefix + "/" + field
}

// joinPrefix joins a (possibly empty) schema-relative rule prefix onto
// topicID, which is always present since every emitted path starts with it.
func joinPrefix(topicID, prefix string) string {
	if prefix == "" {
		return topicID
	}
	return topicID + "/" + prefix
}

// RegisterRenameRule adds a rule for topicID. Rules accumulate; registering
// the same (prefix, arrayField, nameField) twice is harmless but produces a
// duplicate (ApplyNameTransform's first-match-wins semantics make the
// duplicate a no-op).
func (r *Registry) RegisterRenameRule(topicID, prefix, arrayField, nameField string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules[topicID] = append(r.rules[topicID], RenameRule{Prefix: prefix, ArrayField: arrayField, NameField: nameField})
	return nil
}

// jointStateArrayFields is the common ROS convention: sensor_msgs/JointState
// (and any message shaped like it) pairs a "name" string array with one or
// more parallel value arrays.
var jointStateArrayFields = []string{"position", "velocity", "effort"}

// registerImplicitRules inspects msg for the JointState shape (a "name"
// field that is a dynamic/fixed array of strings, alongside any of
// position/velocity/effort as arrays) and, if found, registers the implicit
// rename rules for it at prefix. Called while already holding r.mu (from
// RegisterMessageDefinition).
func (r *Registry) registerImplicitRules(topicID string, msg *ROSMessage, prefix string) {
	hasNameArray := false
	for _, f := range msg.Fields {
		if f.Name == "name" && f.Type.IsBuiltin && f.Type.Builtin == String && f.Array != ArrayNone {
			hasNameArray = true
			break
		}
	}
	if !hasNameArray {
		return
	}
	for _, f := range msg.Fields {
		for _, candidate := range jointStateArrayFields {
			if f.Name == candidate && f.Array != ArrayNone {
				r.rules[topicID] = append(r.rules[topicID], RenameRule{Prefix: prefix, ArrayField: candidate, NameField: "name"})
			}
		}
	}
}

// parseTrailingIndex reports whether path is exactly base+"."+N for some
// non-negative integer N with no further "/" (i.e. a leaf array element,
// not a deeper path through a sub-message), returning N.
func parseTrailingIndex(path, base string) (int, bool) {
	prefix := base + "."
	if len(path) <= len(prefix) || path[:len(prefix)] != prefix {
		return 0, false
	}
	suffix := path[len(prefix):]
	for i := 0; i < len(suffix); i++ {
		if suffix[i] < '0' || suffix[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}

// ApplyNameTransform renders renamed into a sequence of (path, value) pairs:
// for each entry in flat.Value, if its path matches a registered rule's
// array field and a name exists at the same index, the entry's path is
// replaced with the rule's prefix joined to that name; otherwise the path
// is unchanged. Order follows flat.Value.
func (r *Registry) ApplyNameTransform(topicID string, flat *FlatMessage, renamed *[]RenamedEntry) error {
	r.mu.RLock()
	rules := r.rules[topicID]
	r.mu.RUnlock()

	*renamed = (*renamed)[:0]
	if len(rules) == 0 {
		for _, v := range flat.Value {
			*renamed = append(*renamed, RenamedEntry{Path: v.Path, Value: v.Value})
		}
		return nil
	}

	// Every emitted path carries topicID as its leading segment (see
	// renderPath), so rule prefixes are matched and rewritten relative to
	// topicID too, not just the rule's own (schema-relative) Prefix.
	nameIndexes := make([]map[int]string, len(rules))
	for i, rule := range rules {
		base := fieldBase(joinPrefix(topicID, rule.Prefix), rule.NameField)
		idx := make(map[int]string)
		for _, n := range flat.Name {
			if k, ok := parseTrailingIndex(n.Path, base); ok {
				idx[k] = n.Text
			}
		}
		nameIndexes[i] = idx
	}

	for _, v := range flat.Value {
		path := v.Path
		for i, rule := range rules {
			effectivePrefix := joinPrefix(topicID, rule.Prefix)
			base := fieldBase(effectivePrefix, rule.ArrayField)
			k, ok := parseTrailingIndex(v.Path, base)
			if !ok {
				continue
			}
			name, ok := nameIndexes[i][k]
			if !ok {
				continue
			}
			path = effectivePrefix + "/" + name
			break
		}
		*renamed = append(*renamed, RenamedEntry{Path: path, Value: v.Value})
	}
	return nil
}
