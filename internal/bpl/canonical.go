package bpl

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical renders p as RFC 8785 canonical JSON. This is the only
// serialization used for program hashes.
//
// Object keys are sorted by UTF-16 code units, strings are NFC normalized
// and HTML characters are not escaped. Commands and attributes appear in
// their printed form.
func MarshalCanonical(p *Program) ([]byte, error) {
	return marshalCanonical(programDocument(p))
}

// Document returns the generic JSON tree MarshalCanonical serializes, for
// embedding in other JSON output.
func Document(p *Program) map[string]any {
	return programDocument(p)
}

func programDocument(p *Program) map[string]any {
	decls := make([]any, 0, len(p.Decls))
	for _, d := range p.Decls {
		decls = append(decls, declDocument(d))
	}
	return map[string]any{
		"ir_version": IRVersion,
		"decls":      decls,
	}
}

func declDocument(d Decl) map[string]any {
	switch d := d.(type) {
	case *TypeDecl:
		return map[string]any{"kind": "type", "name": d.Name}
	case *Constant:
		return map[string]any{
			"kind":   "const",
			"name":   d.Name,
			"type":   d.Type.String(),
			"unique": d.Unique,
		}
	case *GlobalVariable:
		return map[string]any{"kind": "var", "name": d.Name, "type": d.Type.String()}
	case *Procedure:
		return map[string]any{
			"kind":       "procedure",
			"name":       d.Name,
			"in":         varsDocument(d.InParams),
			"out":        varsDocument(d.OutParams),
			"attributes": attributesDocument(d.Attributes),
		}
	case *Implementation:
		blocks := make([]any, len(d.Blocks))
		for i, b := range d.Blocks {
			blocks[i] = blockDocument(b)
		}
		return map[string]any{
			"kind":       "implementation",
			"name":       d.Proc.Name,
			"locals":     varsDocument(d.Locals),
			"blocks":     blocks,
			"attributes": attributesDocument(d.Attributes),
		}
	default:
		return map[string]any{"kind": "unknown", "name": d.DeclName()}
	}
}

func varsDocument(vars []*Variable) []any {
	out := make([]any, len(vars))
	for i, v := range vars {
		out[i] = map[string]any{"name": v.Name, "type": v.Type.String()}
	}
	return out
}

func attributesDocument(attrs []*Attribute) []any {
	out := make([]any, len(attrs))
	for i, a := range attrs {
		out[i] = a.String()
	}
	return out
}

func blockDocument(b *Block) map[string]any {
	cmds := make([]any, len(b.Cmds))
	for i, c := range b.Cmds {
		cmds[i] = c.String()
	}
	doc := map[string]any{
		"id":    int64(b.ID),
		"label": b.Label,
		"cmds":  cmds,
	}
	switch t := b.Transfer.(type) {
	case *Goto:
		targets := make([]any, len(t.Targets))
		for i, id := range t.Targets {
			targets[i] = int64(id)
		}
		doc["transfer"] = map[string]any{"kind": "goto", "targets": targets}
	case *Return:
		doc["transfer"] = map[string]any{"kind": "return"}
	}
	return doc
}

func marshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return marshalCanonicalString(val)
	case int64:
		return []byte(fmt.Sprintf("%d", val)), nil
	case int:
		return []byte(fmt.Sprintf("%d", val)), nil
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case []any:
		return marshalCanonicalArray(val)
	case map[string]any:
		return marshalCanonicalObject(val)
	case float64, float32:
		return nil, fmt.Errorf("floats are forbidden in canonical JSON: %v", val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// marshalCanonicalString NFC-normalizes s and escapes only control
// characters, backslash and quote. U+2028 and U+2029 stay literal.
func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}
	result := bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
	return unescapeLineSeparators(result), nil
}

// unescapeLineSeparators turns \u2028 and \u2029 escapes produced by
// encoding/json back into literal characters, leaving \\u2028 alone.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' {
			out = append(out, data[i])
			continue
		}
		if i+5 < len(data) && string(data[i+1:i+5]) == "u202" && (data[i+5] == '8' || data[i+5] == '9') {
			if data[i+5] == '8' {
				out = append(out, "\u2028"...)
			} else {
				out = append(out, "\u2029"...)
			}
			i += 5
			continue
		}
		// Any other escape is two bytes; copy both so an escaped
		// backslash never pairs with the following text.
		out = append(out, data[i])
		if i+1 < len(data) {
			out = append(out, data[i+1])
			i++
		}
	}
	return out
}

func marshalCanonicalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := marshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)

	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := marshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// compareUTF16 orders strings by UTF-16 code units (RFC 8785), which differs
// from Go's UTF-8 byte order for characters above U+FFFF.
func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	return slices.Compare(a16, b16)
}
