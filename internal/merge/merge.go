package merge

import (
	"fmt"
	"sort"
)

// Document is a settings document: string keys mapped to JSON values
// (nil, bool, json.Number or float64, string, []any, map[string]any).
type Document map[string]any

// Keys returns the document keys in lexicographic order.
func (d Document) Keys() []string {
	keys := make([]string, 0, len(d))
	for k := range d {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Clone returns a deep copy of the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	out := make(Document, len(d))
	for k, v := range d {
		out[k] = cloneValue(v)
	}
	return out
}

// SafePresetKeys are presentation-only settings that --safe-preset keeps at
// the user's existing values.
var SafePresetKeys = []string{
	"workbench.colorTheme",
	"workbench.iconTheme",
	"editor.fontSize",
	"editor.fontFamily",
	"window.zoomLevel",
	"terminal.integrated.fontSize",
	"terminal.integrated.fontFamily",
}

// SourceExisting labels log entries produced from the user's own settings.
const SourceExisting = "existing user configuration"

// Merge overlays overlay on top of base and returns a new document. Overlay
// keys are visited in sorted order and every decision is appended to log.
// Neither base nor overlay is modified.
//
// Objects on both sides merge recursively, arrays on both sides are unioned,
// and every other combination is replaced by the overlay value.
func Merge(base, overlay Document, source string, log *Log) Document {
	result := base.Clone()
	if result == nil {
		result = make(Document, len(overlay))
	}

	for _, key := range overlay.Keys() {
		overlayValue := overlay[key]

		baseValue, exists := result[key]
		if !exists {
			result[key] = cloneValue(overlayValue)
			log.add(key, Added, source, "none", Summarize(overlayValue))
			continue
		}

		if Equal(baseValue, overlayValue) {
			continue
		}

		baseObj, baseIsObj := asObject(baseValue)
		overlayObj, overlayIsObj := asObject(overlayValue)
		if baseIsObj && overlayIsObj {
			result[key] = map[string]any(Merge(baseObj, overlayObj, source, log))
			log.add(key, RecursivelyMerged, source, objectSummary, objectSummary)
			continue
		}

		baseArr, baseIsArr := baseValue.([]any)
		overlayArr, overlayIsArr := overlayValue.([]any)
		if baseIsArr && overlayIsArr {
			union := unionArrays(baseArr, overlayArr)
			result[key] = union
			log.add(key, ArrayMerged, source, itemsSummary(len(baseArr)), itemsSummary(len(union)))
			continue
		}

		result[key] = cloneValue(overlayValue)
		log.add(key, Overwritten, source, Summarize(baseValue), Summarize(overlayValue))
	}

	return result
}

// ProtectKeys restores the listed keys to their values in original wherever
// merged ended up with something different. Keys missing from original or
// from merged are left alone, so no key is ever introduced.
func ProtectKeys(merged, original Document, keys []string, log *Log) Document {
	result := merged.Clone()
	if result == nil {
		result = Document{}
	}

	for _, key := range keys {
		userValue, ok := original[key]
		if !ok {
			continue
		}
		current, ok := result[key]
		if !ok || Equal(current, userValue) {
			continue
		}
		result[key] = cloneValue(userValue)
		log.add(key, Protected, SourceExisting, Summarize(current), Summarize(userValue))
	}

	return result
}

// unionArrays returns base followed by overlay elements not already present.
// A union made only of strings is sorted.
func unionArrays(base, overlay []any) []any {
	union := make([]any, 0, len(base)+len(overlay))
	seen := make(map[string]bool, len(base)+len(overlay))

	for _, items := range [][]any{base, overlay} {
		for _, item := range items {
			k := canonical(item)
			if seen[k] {
				continue
			}
			seen[k] = true
			union = append(union, cloneValue(item))
		}
	}

	if allStrings(union) {
		sort.Slice(union, func(i, j int) bool {
			return union[i].(string) < union[j].(string)
		})
	}
	return union
}

func allStrings(items []any) bool {
	for _, item := range items {
		if _, ok := item.(string); !ok {
			return false
		}
	}
	return true
}

func asObject(v any) (Document, bool) {
	switch m := v.(type) {
	case map[string]any:
		return Document(m), true
	case Document:
		return m, true
	}
	return nil, false
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return map[string]any(Document(t).Clone())
	case Document:
		return map[string]any(t.Clone())
	case []any:
		if t == nil {
			return t
		}
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	}
	return v
}

func itemsSummary(n int) string {
	return fmt.Sprintf("[%d items]", n)
}
