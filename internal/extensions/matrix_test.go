package extensions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const commonName = ".project-common"

func scenarioProfiles() []ProfileExtensions {
	return []ProfileExtensions{
		{Name: commonName, Records: []Record{{ID: "E1", Enabled: true}, {ID: "E2", Enabled: true}}},
		{Name: "alice", Records: []Record{{ID: "E2", Enabled: true}, {ID: "E3", Enabled: false}}},
	}
}

func rowIDs(rows []Row) []string {
	var ids []string
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	return ids
}

func TestBuildMatrix_Scenario(t *testing.T) {
	m := BuildMatrix(scenarioProfiles(), commonName, map[string]string{"E1": "first"}, MatrixOptions{})

	require.Len(t, m.Rows, 3)
	assert.Equal(t, []string{"E3", "E1", "E2"}, rowIDs(m.Rows))
	assert.Equal(t, []string{"E1", "E2"}, m.CommonIDs)
	assert.Equal(t, []string{"E3"}, rowIDs(m.Optional()))
	assert.Equal(t, []string{"E1", "E2"}, rowIDs(m.CommonRows()))
	assert.Equal(t, []string{commonName, "alice"}, m.Profiles)

	e3 := m.Rows[0]
	assert.False(t, e3.Common)
	assert.Equal(t, Absent, e3.Status(commonName))
	assert.Equal(t, Disabled, e3.Status("alice"))

	e2 := m.Rows[2]
	assert.True(t, e2.Common)
	assert.Equal(t, Common, e2.Status(commonName))
	assert.Equal(t, Enabled, e2.Status("alice"))

	assert.Equal(t, "first", m.Rows[1].Explanation)
	assert.Equal(t, 2, m.MissingExplanations)

	r := Reconcile([]string{"E3"}, m.CommonIDs, NewInstalledSet(nil))
	assert.Equal(t, []string{"E1", "E2", "E3"}, r.Targets)
}

func TestBuildMatrix_NoCommonProfile(t *testing.T) {
	m := BuildMatrix([]ProfileExtensions{
		{Name: "bob", Records: []Record{{ID: "b.two", Enabled: true}, {ID: "a.one", Enabled: true}}},
	}, commonName, nil, MatrixOptions{})

	assert.Equal(t, []string{"a.one", "b.two"}, rowIDs(m.Optional()))
	assert.Empty(t, m.CommonIDs)
	assert.Empty(t, m.CommonRows())
	assert.Equal(t, 2, m.MissingExplanations)
}

func TestBuildMatrix_EmptyExplanationCountsAsMissing(t *testing.T) {
	m := BuildMatrix([]ProfileExtensions{
		{Name: "bob", Records: []Record{{ID: "X", Enabled: true}, {ID: "Y", Enabled: true}}},
	}, commonName, map[string]string{"X": "", "Y": "why"}, MatrixOptions{})

	assert.Equal(t, 1, m.MissingExplanations)
	assert.Equal(t, "", m.Rows[0].Explanation)
	assert.Equal(t, "why", m.Rows[1].Explanation)
}

func TestBuildMatrix_Empty(t *testing.T) {
	m := BuildMatrix(nil, commonName, nil, MatrixOptions{})
	assert.Empty(t, m.Rows)
	assert.Empty(t, m.Optional())
}

func TestBuildMatrix_DuplicateInProfileLastWins(t *testing.T) {
	m := BuildMatrix([]ProfileExtensions{
		{Name: "bob", Records: []Record{{ID: "x.y", Enabled: true}, {ID: "x.y", Enabled: false}}},
	}, commonName, nil, MatrixOptions{})

	require.Len(t, m.Rows, 1)
	assert.Equal(t, Disabled, m.Rows[0].Status("bob"))
}

func TestBuildMatrix_CaseSensitiveByDefault(t *testing.T) {
	profiles := []ProfileExtensions{
		{Name: commonName, Records: []Record{{ID: "MS-Python.Python", Enabled: true}}},
		{Name: "alice", Records: []Record{{ID: "ms-python.python", Enabled: true}}},
	}

	m := BuildMatrix(profiles, commonName, nil, MatrixOptions{})
	assert.Equal(t, []string{"ms-python.python", "MS-Python.Python"}, rowIDs(m.Rows))
	assert.Equal(t, []string{"ms-python.python"}, rowIDs(m.Optional()))

	// Reconciliation still compares installed ids without case.
	r := Reconcile([]string{"ms-python.python"}, m.CommonIDs, NewInstalledSet([]string{"ms-python.python"}))
	assert.Equal(t, []string{"MS-Python.Python", "ms-python.python"}, r.AlreadyPresent)
	assert.Empty(t, r.ToInstall)
}

func TestBuildMatrix_FoldCase(t *testing.T) {
	profiles := []ProfileExtensions{
		{Name: commonName, Records: []Record{{ID: "MS-Python.Python", Enabled: true}}},
		{Name: "alice", Records: []Record{{ID: "ms-python.python", Enabled: false}}},
	}

	m := BuildMatrix(profiles, commonName, map[string]string{"MS-PYTHON.python": "Python"}, MatrixOptions{FoldCase: true})
	require.Len(t, m.Rows, 1)
	row := m.Rows[0]
	assert.Equal(t, "ms-python.python", row.ID)
	assert.True(t, row.Common)
	assert.Equal(t, Common, row.Status(commonName))
	assert.Equal(t, Disabled, row.Status("alice"))
	assert.Equal(t, "Python", row.Explanation)
	assert.Empty(t, m.Optional())
}
