package merge

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/big"
	"strconv"
)

const objectSummary = "[object]"

// Equal reports whether two JSON values are structurally equal. Objects
// compare independent of key order and numbers by value, so 1 equals 1.0.
func Equal(a, b any) bool {
	return canonical(a) == canonical(b)
}

// canonical encodes v as compact JSON with sorted object keys and no HTML
// escaping. encoding/json already sorts map keys.
func canonical(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalize(v)); err != nil {
		return fmt.Sprintf("%#v", v)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
}

// normalize converts Document values nested anywhere in v to plain maps so
// that both spellings encode identically.
func normalize(v any) any {
	switch t := v.(type) {
	case Document:
		m := make(map[string]any, len(t))
		for k, item := range t {
			m[k] = normalize(item)
		}
		return m
	case map[string]any:
		m := make(map[string]any, len(t))
		for k, item := range t {
			m[k] = normalize(item)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = normalize(item)
		}
		return out
	case json.Number:
		return canonicalNumber(t.String())
	case float64:
		return canonicalNumber(strconv.FormatFloat(t, 'g', -1, 64))
	}
	return v
}

// canonicalNumber spells a JSON number so that equal values encode alike.
// Integral values stay exact at any size; fractions compare as float64.
func canonicalNumber(s string) any {
	r, ok := new(big.Rat).SetString(s)
	if !ok {
		return json.Number(s)
	}
	if r.IsInt() {
		return json.Number(r.Num().String())
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return json.Number(s)
	}
	return json.Number(strconv.FormatFloat(f, 'g', -1, 64))
}

// Summarize renders a value for the merge log: arrays as "[n items]",
// objects as "[object]" and scalars as their plain text.
func Summarize(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case []any:
		return itemsSummary(len(t))
	case map[string]any, Document:
		return objectSummary
	case string:
		return t
	case bool:
		return strconv.FormatBool(t)
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	}
	return fmt.Sprint(v)
}
