package introspect

// ValueEntry is one (path, numeric) pair in a FlatMessage's value sequence.
type ValueEntry struct {
	Path  string
	Value Variant
}

// NameEntry is one (path, string) pair -- STRING fields land here, not in
// Value, since a string has no Variant representation.
type NameEntry struct {
	Path string
	Text string
}

// BlobEntry is one (path, raw bytes) pair, produced for every DYNAMIC
// raw-byte array regardless of its length, and by the blob fallback for
// FIXED numeric arrays longer than max_array_size (see SPEC_FULL.md).
type BlobEntry struct {
	Path  string
	Bytes []byte
}

// FlatMessage is the output model of [MODULE] E: the flattened
// key/value/blob view of one deserialized message. Emission order equals
// DFS traversal order, fields in declaration order, array elements in index
// order -- this ordering is part of the contract, not an implementation
// detail.
type FlatMessage struct {
	SchemaRef string
	Value     []ValueEntry
	Name      []NameEntry
	Blob      []BlobEntry
}

// Reset truncates all three sequences to length zero while keeping their
// backing arrays, so a caller can reuse the same FlatMessage across many
// deserializations without re-allocating.
func (f *FlatMessage) Reset() {
	f.Value = f.Value[:0]
	f.Name = f.Name[:0]
	f.Blob = f.Blob[:0]
}

func (f *FlatMessage) appendValue(path string, v Variant) {
	f.Value = append(f.Value, ValueEntry{Path: path, Value: v})
}

func (f *FlatMessage) appendName(path string, s string) {
	f.Name = append(f.Name, NameEntry{Path: path, Text: s})
}

func (f *FlatMessage) appendBlob(path string, b []byte) {
	f.Blob = append(f.Blob, BlobEntry{Path: path, Bytes: b})
}
