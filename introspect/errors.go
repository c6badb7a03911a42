package introspect

import "fmt"

// SchemaNotFoundError is returned when an operation references a topic ID
// that has never been registered.
type SchemaNotFoundError struct {
	TopicID string
}

func (e *SchemaNotFoundError) Error() string {
	return fmt.Sprintf("schema not found for topic %q", e.TopicID)
}

// DefinitionParseError is returned when the IDL text for a message
// definition could not be parsed.
type DefinitionParseError struct {
	Line   int
	Reason string
}

func (e *DefinitionParseError) Error() string {
	return fmt.Sprintf("definition parse error at line %d: %s", e.Line, e.Reason)
}

// UnresolvedTypeError is returned when the IDL references a user type that
// has no defining block and is not a builtin or std_msgs/Header.
type UnresolvedTypeError struct {
	Name string
}

func (e *UnresolvedTypeError) Error() string {
	return fmt.Sprintf("unresolved type %q", e.Name)
}

// TruncatedBufferError is returned when the walker would need to read past
// the end of the buffer.
type TruncatedBufferError struct {
	Needed    int
	Remaining int
}

func (e *TruncatedBufferError) Error() string {
	return fmt.Sprintf("truncated buffer: need %d bytes, %d remaining", e.Needed, e.Remaining)
}

// InvalidLengthError is returned when a dynamic array's length prefix
// exceeds the bytes remaining in the buffer.
type InvalidLengthError struct {
	Length    int
	Remaining int
}

func (e *InvalidLengthError) Error() string {
	return fmt.Sprintf("invalid dynamic length %d, only %d bytes remain", e.Length, e.Remaining)
}

// TooManyElementsError is returned when an array's length exceeds the
// max_array_size policy and is not eligible for the blob fallback.
type TooManyElementsError struct {
	Limit int
	Seen  int
}

func (e *TooManyElementsError) Error() string {
	return fmt.Sprintf("array has %d elements, limit is %d", e.Seen, e.Limit)
}

// ConversionOutOfRangeError is returned by Variant.Convert when a value
// cannot be represented in the target kind.
type ConversionOutOfRangeError struct {
	From BuiltinKind
	To   BuiltinKind
}

func (e *ConversionOutOfRangeError) Error() string {
	return fmt.Sprintf("cannot convert %s to %s without loss", e.From, e.To)
}

// RecursiveDefinitionError is returned at registration time when a message
// type (transitively) refers to itself, which would require an infinitely
// deep traversal plan.
type RecursiveDefinitionError struct {
	Type string
}

func (e *RecursiveDefinitionError) Error() string {
	return fmt.Sprintf("recursive message definition involving %q", e.Type)
}
