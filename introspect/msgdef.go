package introspect

import (
	"strconv"
	"strings"
)

// ROSField is one declared field of a ROSMessage. Constants carry their
// literal text and never consume wire bytes.
type ROSField struct {
	Type         ROSType
	Name         string
	Array        ArrayKind
	ArrayLen     int
	IsConstant   bool
	ConstantText string
}

// ROSMessage is a single parsed message block: its own type and its
// fields, in declaration order (which is also wire order).
type ROSMessage struct {
	Type   ROSType
	Fields []ROSField
}

// headerFallback is the built-in definition of std_msgs/Header, used when
// an IDL block references Header/std_msgs/Header without an explicit
// defining MSG: block of its own -- see SPEC_FULL.md.
func headerFallback() *ROSMessage {
	headerType := ROSType{Package: "std_msgs", Name: "Header"}
	return &ROSMessage{
		Type: headerType,
		Fields: []ROSField{
			{Type: ROSType{IsBuiltin: true, Builtin: Uint32, Name: "uint32"}, Name: "seq"},
			{Type: ROSType{IsBuiltin: true, Builtin: Time, Name: "time"}, Name: "stamp"},
			{Type: ROSType{IsBuiltin: true, Builtin: String, Name: "string"}, Name: "frame_id"},
		},
	}
}

const separatorMinLen = 4

func isSeparatorLine(line string) bool {
	trimmed := strings.TrimRight(line, "\r")
	if len(trimmed) < separatorMinLen {
		return false
	}
	for _, r := range trimmed {
		if r != '=' {
			return false
		}
	}
	return true
}

// parseDefinition parses the concatenated multi-message IDL text shipped
// alongside a topic's first message into a set of ROSMessages, keyed by
// their canonical "package/Name" string. rootType.Package is the package used
// to qualify unqualified user-type names that appear in the root (first)
// block.
func parseDefinition(rootType ROSType, text string) (map[string]*ROSMessage, error) {
	lines := strings.Split(text, "\n")

	type block struct {
		pkgName  string // qualifying package for unqualified names in this block
		typeName ROSType
		lines    []string
		lineNo   int // 1-based line number of the block's first field line, for error messages
	}

	var blocks []block
	cur := block{pkgName: rootType.Package, typeName: rootType, lineNo: 1}

	lineNo := 0
	for _, raw := range lines {
		lineNo++
		if isSeparatorLine(raw) {
			blocks = append(blocks, cur)
			cur = block{lineNo: lineNo + 1}
			continue
		}
		cur.lines = append(cur.lines, raw)
	}
	blocks = append(blocks, cur)

	// The first MSG: header of every block after the root names that
	// block's type; parse it out before scanning fields.
	for i := range blocks {
		if i == 0 {
			continue
		}
		b := &blocks[i]
		// Find the first non-blank line; it must be "MSG: pkg/Name".
		idx := 0
		for idx < len(b.lines) && strings.TrimSpace(b.lines[idx]) == "" {
			idx++
		}
		if idx >= len(b.lines) {
			return nil, &DefinitionParseError{Line: b.lineNo, Reason: "message block has no MSG: header"}
		}
		header := strings.TrimSpace(b.lines[idx])
		const prefix = "MSG:"
		if !strings.HasPrefix(header, prefix) {
			return nil, &DefinitionParseError{Line: b.lineNo + idx, Reason: "expected MSG: header, got " + header}
		}
		fullName := strings.TrimSpace(header[len(prefix):])
		slash := strings.IndexByte(fullName, '/')
		if slash < 0 {
			return nil, &DefinitionParseError{Line: b.lineNo + idx, Reason: "MSG: header missing package: " + fullName}
		}
		b.pkgName = fullName[:slash]
		b.typeName = ROSType{Package: fullName[:slash], Name: fullName[slash+1:]}
		b.lines = b.lines[idx+1:]
		b.lineNo = b.lineNo + idx + 1
	}

	messages := make(map[string]*ROSMessage, len(blocks))
	for _, b := range blocks {
		msg := &ROSMessage{Type: b.typeName}
		seen := make(map[string]bool, len(b.lines))

		ln := b.lineNo
		for _, raw := range b.lines {
			field, ok, err := parseFieldLine(raw, b.pkgName, ln)
			ln++
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if seen[field.Name] {
				return nil, &DefinitionParseError{Line: ln - 1, Reason: "duplicate field name " + field.Name}
			}
			seen[field.Name] = true
			msg.Fields = append(msg.Fields, field)
		}
		messages[b.typeName.String()] = msg
	}

	// Verify closure: every non-builtin field type referenced anywhere
	// must be a key of messages. parseFieldLine has already qualified
	// unqualified names against their enclosing block's package (rule
	// 4.B.3), so the only remaining gap is std_msgs/Header, which falls
	// back to the builtin definition when no block defines it.
	for _, msg := range messages {
		for _, f := range msg.Fields {
			if f.Type.IsBuiltin {
				continue
			}
			key := f.Type.String()
			if _, ok := messages[key]; ok {
				continue
			}
			if key == "std_msgs/Header" {
				messages[key] = headerFallback()
				continue
			}
			return nil, &UnresolvedTypeError{Name: key}
		}
	}

	return messages, nil
}

// parseFieldLine parses one line of an IDL block. It returns ok=false for
// blank lines and comment-only lines.
func parseFieldLine(raw string, blockPkg string, lineNo int) (ROSField, bool, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return ROSField{}, false, nil
	}

	fields := strings.Fields(trimmed)
	if len(fields) < 1 {
		return ROSField{}, false, nil
	}
	typeTok := fields[0]

	rest := strings.TrimSpace(trimmed[len(typeTok):])
	if rest == "" {
		return ROSField{}, false, &DefinitionParseError{Line: lineNo, Reason: "field missing a name: " + trimmed}
	}

	nameEnd := strings.IndexAny(rest, " \t=")
	var name, remainder string
	if nameEnd == -1 {
		name = rest
		remainder = ""
	} else {
		name = rest[:nameEnd]
		remainder = strings.TrimSpace(rest[nameEnd:])
	}
	if name == "" {
		return ROSField{}, false, &DefinitionParseError{Line: lineNo, Reason: "field missing a name: " + trimmed}
	}

	isConstant := false
	constText := ""
	if strings.HasPrefix(remainder, "#") {
		remainder = ""
	} else if strings.HasPrefix(remainder, "=") {
		isConstant = true
		val := strings.TrimSpace(remainder[1:])
		if typeTok != "string" {
			// Non-string constants: '#' starts an end-of-line comment.
			if idx := strings.IndexByte(val, '#'); idx >= 0 {
				val = strings.TrimSpace(val[:idx])
			}
		}
		// String constants keep everything verbatim, including any '#',
		// per the ROS genmsg convention.
		constText = val
	}

	baseType, arr, arrLen, err := ParseROSType(typeTok)
	if err != nil {
		return ROSField{}, false, err
	}
	if !baseType.IsBuiltin && baseType.Package == "" && baseType.Name != "Header" {
		baseType.Package = blockPkg
	}

	if isConstant {
		if arr != ArrayNone {
			return ROSField{}, false, &DefinitionParseError{Line: lineNo, Reason: "constant field cannot be an array: " + name}
		}
		if !baseType.IsBuiltin {
			return ROSField{}, false, &DefinitionParseError{Line: lineNo, Reason: "constant field must be a scalar builtin: " + name}
		}
	}

	return ROSField{
		Type:         baseType,
		Name:         name,
		Array:        arr,
		ArrayLen:     arrLen,
		IsConstant:   isConstant,
		ConstantText: constText,
	}, true, nil
}

// constantAsInt64 parses a non-string constant's literal text as an
// integer; used only incidentally (e.g. by tooling built on top of this
// package) since deserialization itself never touches constants.
func constantAsInt64(text string) (int64, error) {
	return strconv.ParseInt(strings.TrimSpace(text), 10, 64)
}
