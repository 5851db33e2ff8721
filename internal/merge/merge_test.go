package merge

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMerge_ArrayUnionAndAdd(t *testing.T) {
	base := Document{"a": 1, "b": []any{1, 2}}
	overlay := Document{"b": []any{2, 3}, "c": "x"}
	log := NewLog()

	merged := Merge(base, overlay, "alice", log)

	assert.Equal(t, Document{"a": 1, "b": []any{1, 2, 3}, "c": "x"}, merged)
	assert.Equal(t, []Entry{
		{Key: "b", Action: ArrayMerged, Source: "alice", Old: "[2 items]", New: "[3 items]"},
		{Key: "c", Action: Added, Source: "alice", Old: "none", New: "x"},
	}, log.Entries())
}

func TestMerge_KeysVisitedInSortedOrder(t *testing.T) {
	log := NewLog()
	Merge(Document{}, Document{"z": 1, "a": 2, "m": 3}, "p", log)

	var keys []string
	for _, e := range log.Entries() {
		keys = append(keys, e.Key)
	}
	assert.Equal(t, []string{"a", "m", "z"}, keys)
}

func TestMerge_IdenticalValueIsNoop(t *testing.T) {
	base := Document{"editor.tabSize": 4, "files.exclude": map[string]any{"**/.git": true}}
	overlay := Document{"editor.tabSize": 4, "files.exclude": map[string]any{"**/.git": true}}
	log := NewLog()

	merged := Merge(base, overlay, "p", log)

	assert.Equal(t, base, merged)
	assert.Zero(t, log.Len())
}

func TestMerge_ObjectsMergeRecursively(t *testing.T) {
	base := Document{"[python]": map[string]any{"editor.tabSize": 4, "editor.formatOnSave": false}}
	overlay := Document{"[python]": map[string]any{"editor.formatOnSave": true, "editor.rulers": []any{88}}}
	log := NewLog()

	merged := Merge(base, overlay, ".project-common", log)

	assert.Equal(t, map[string]any{
		"editor.tabSize":      4,
		"editor.formatOnSave": true,
		"editor.rulers":       []any{88},
	}, merged["[python]"])

	// Child entries come first, then the summary for the parent key.
	assert.Equal(t, []Entry{
		{Key: "editor.formatOnSave", Action: Overwritten, Source: ".project-common", Old: "false", New: "true"},
		{Key: "editor.rulers", Action: Added, Source: ".project-common", Old: "none", New: "[1 items]"},
		{Key: "[python]", Action: RecursivelyMerged, Source: ".project-common", Old: "[object]", New: "[object]"},
	}, log.Entries())
}

func TestMerge_ObjectAgainstNonObjectOverwrites(t *testing.T) {
	log := NewLog()
	merged := Merge(
		Document{"k": map[string]any{"a": 1}},
		Document{"k": []any{1}},
		"p", log,
	)

	assert.Equal(t, []any{1}, merged["k"])
	require.Equal(t, 1, log.Len())
	assert.Equal(t, Entry{Key: "k", Action: Overwritten, Source: "p", Old: "[object]", New: "[1 items]"}, log.Entries()[0])
}

func TestMerge_ArrayAgainstScalarOverwrites(t *testing.T) {
	log := NewLog()
	merged := Merge(Document{"k": []any{"a"}}, Document{"k": "a"}, "p", log)

	assert.Equal(t, "a", merged["k"])
	assert.Equal(t, 1, log.Count(Overwritten))
	assert.Equal(t, "[1 items]", log.Entries()[0].Old)
}

func TestMerge_ScalarOverwrite(t *testing.T) {
	log := NewLog()
	merged := Merge(
		Document{"editor.fontSize": json.Number("12")},
		Document{"editor.fontSize": json.Number("14")},
		"bob", log,
	)

	assert.Equal(t, json.Number("14"), merged["editor.fontSize"])
	assert.Equal(t, []Entry{{Key: "editor.fontSize", Action: Overwritten, Source: "bob", Old: "12", New: "14"}}, log.Entries())
}

func TestMerge_NumericallyEqualScalarIsNoop(t *testing.T) {
	log := NewLog()
	merged := Merge(Document{"a": json.Number("1")}, Document{"a": json.Number("1.0")}, "p", log)

	assert.Equal(t, json.Number("1"), merged["a"])
	assert.Equal(t, 0, log.Len())
}

func TestEqual_Numbers(t *testing.T) {
	tests := []struct {
		a, b any
		want bool
	}{
		{json.Number("1"), json.Number("1.0"), true},
		{json.Number("100"), json.Number("1e2"), true},
		{json.Number("0.5"), 0.5, true},
		{json.Number("2"), 2, true},
		{json.Number("12345678901234567890"), json.Number("12345678901234567891"), false},
		{json.Number("0.1"), json.Number("0.10"), true},
		{json.Number("1"), "1", false},
		{[]any{json.Number("1.0")}, []any{1}, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Equal(tt.a, tt.b), "%v vs %v", tt.a, tt.b)
	}
}

func TestMerge_ArrayUnionSkipsNumericallyEqualElements(t *testing.T) {
	merged := Merge(Document{"k": []any{json.Number("80")}}, Document{"k": []any{json.Number("80.0"), json.Number("120")}}, "p", nil)
	assert.Equal(t, []any{json.Number("80"), json.Number("120")}, merged["k"])
}

func TestMerge_StringArraysAreSorted(t *testing.T) {
	merged := Merge(
		Document{"globs": []any{"src/**", "build/**"}},
		Document{"globs": []any{"dist/**", "src/**"}},
		"p", nil,
	)
	assert.Equal(t, []any{"build/**", "dist/**", "src/**"}, merged["globs"])
}

func TestMerge_MixedArraysKeepFirstSeenOrder(t *testing.T) {
	merged := Merge(
		Document{"k": []any{3, "b"}},
		Document{"k": []any{"a", 3, 1}},
		"p", nil,
	)
	assert.Equal(t, []any{3, "b", "a", 1}, merged["k"])
}

func TestMerge_EmptyArraySide(t *testing.T) {
	t.Run("empty base", func(t *testing.T) {
		merged := Merge(Document{"k": []any{}}, Document{"k": []any{"b", "a"}}, "p", nil)
		assert.Equal(t, []any{"a", "b"}, merged["k"])
	})
	t.Run("empty overlay", func(t *testing.T) {
		log := NewLog()
		merged := Merge(Document{"k": []any{3, 1}}, Document{"k": []any{}}, "p", log)
		assert.Equal(t, []any{3, 1}, merged["k"])
		assert.Equal(t, "[2 items]", log.Entries()[0].New)
	})
}

func TestMerge_ObjectElementsCompareStructurally(t *testing.T) {
	merged := Merge(
		Document{"k": []any{map[string]any{"a": 1, "b": 2}}},
		Document{"k": []any{map[string]any{"b": 2, "a": 1}, map[string]any{"c": 3}}},
		"p", nil,
	)
	assert.Equal(t, []any{map[string]any{"a": 1, "b": 2}, map[string]any{"c": 3}}, merged["k"])
}

func TestMerge_StringAndNumberElementsAreDistinct(t *testing.T) {
	merged := Merge(Document{"k": []any{"1"}}, Document{"k": []any{1}}, "p", nil)
	assert.Equal(t, []any{"1", 1}, merged["k"])
}

func TestMerge_InputsUntouched(t *testing.T) {
	base := Document{
		"nested": map[string]any{"a": []any{"x"}},
		"list":   []any{"b"},
	}
	overlay := Document{
		"nested": map[string]any{"a": []any{"y"}, "b": 1},
		"list":   []any{"a"},
	}
	baseCopy := base.Clone()
	overlayCopy := overlay.Clone()

	merged := Merge(base, overlay, "p", NewLog())
	merged["nested"].(map[string]any)["a"].([]any)[0] = "mutated"

	assert.Equal(t, baseCopy, base)
	assert.Equal(t, overlayCopy, overlay)
}

func TestMerge_NilBase(t *testing.T) {
	log := NewLog()
	merged := Merge(nil, Document{"a": true}, "p", log)
	assert.Equal(t, Document{"a": true}, merged)
	assert.Equal(t, 1, log.Count(Added))
}

func TestMerge_CommonThenProfilePrecedence(t *testing.T) {
	user := Document{"editor.fontSize": 12, "files.autoSave": "off"}
	common := Document{"editor.fontSize": 13, "files.autoSave": "afterDelay"}
	profile := Document{"editor.fontSize": 16}
	log := NewLog()

	merged := Merge(user, common, ".project-common", log)
	merged = Merge(merged, profile, "alice", log)

	assert.Equal(t, 16, merged["editor.fontSize"])
	assert.Equal(t, "afterDelay", merged["files.autoSave"])
	assert.Equal(t, 3, log.Count(Overwritten))
}

func TestProtectKeys_RestoresUserValues(t *testing.T) {
	original := Document{"workbench.colorTheme": "Solarized Light", "editor.tabSize": 2}
	merged := Document{
		"workbench.colorTheme": "Monokai",
		"editor.fontSize":      14,
		"editor.tabSize":       4,
	}
	log := NewLog()

	protected := ProtectKeys(merged, original, SafePresetKeys, log)

	assert.Equal(t, "Solarized Light", protected["workbench.colorTheme"])
	assert.Equal(t, 14, protected["editor.fontSize"], "absent from user settings, not touched")
	assert.Equal(t, 4, protected["editor.tabSize"], "not in the allow-list")
	assert.Equal(t, []Entry{{
		Key:    "workbench.colorTheme",
		Action: Protected,
		Source: SourceExisting,
		Old:    "Monokai",
		New:    "Solarized Light",
	}}, log.Entries())
	assert.Equal(t, "Monokai", merged["workbench.colorTheme"], "input untouched")
}

func TestProtectKeys_NeverIntroducesKeys(t *testing.T) {
	original := Document{"window.zoomLevel": 1}
	protected := ProtectKeys(Document{"a": 1}, original, SafePresetKeys, nil)
	assert.Equal(t, Document{"a": 1}, protected)
}

func TestProtectKeys_EqualValueNotLogged(t *testing.T) {
	log := NewLog()
	ProtectKeys(Document{"editor.fontFamily": "Fira Code"}, Document{"editor.fontFamily": "Fira Code"}, SafePresetKeys, log)
	assert.Zero(t, log.Len())
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"null", nil, "null"},
		{"bool", false, "false"},
		{"number", json.Number("1.5"), "1.5"},
		{"float", 2.0, "2"},
		{"string", "One Dark Pro", "One Dark Pro"},
		{"array", []any{1, 2, 3}, "[3 items]"},
		{"object", map[string]any{"a": 1}, "[object]"},
		{"document", Document{}, "[object]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Summarize(tt.value))
		})
	}
}

func TestEqual_IgnoresKeyOrderAndDocumentType(t *testing.T) {
	assert.True(t, Equal(map[string]any{"a": 1, "b": 2}, Document{"b": 2, "a": 1}))
	assert.True(t, Equal(json.Number("3"), 3.0))
	assert.False(t, Equal([]any{1, 2}, []any{2, 1}))
	assert.False(t, Equal("1", 1))
}

func TestLog_NilIsSafe(t *testing.T) {
	var log *Log
	assert.Zero(t, log.Len())
	assert.Zero(t, log.Count(Added))
	assert.Nil(t, log.Entries())
}
