package extensions

import (
	"sort"
	"strings"
)

// Status is one profile's relation to an extension id.
type Status string

const (
	Absent   Status = "absent"
	Enabled  Status = "enabled"
	Disabled Status = "disabled"
	Common   Status = "common"
)

// ProfileExtensions is the extension list of one named profile.
type ProfileExtensions struct {
	Name    string
	Records []Record
}

// Row summarizes one extension id across all profiles.
type Row struct {
	ID          string
	Explanation string
	Common      bool
	Statuses    map[string]Status
}

// Status returns the row's status for profile, Absent if unknown.
func (r Row) Status(profile string) Status {
	if s, ok := r.Statuses[profile]; ok {
		return s
	}
	return Absent
}

// Matrix is the cross-profile extension table. Rows holds the optional
// (non-common) rows first, then the common rows; each group sorted by id.
type Matrix struct {
	Profiles            []string
	Rows                []Row
	CommonIDs           []string
	MissingExplanations int
}

// Optional returns the leading non-common rows.
func (m *Matrix) Optional() []Row {
	for i, r := range m.Rows {
		if r.Common {
			return m.Rows[:i]
		}
	}
	return m.Rows
}

// CommonRows returns the trailing common rows.
func (m *Matrix) CommonRows() []Row {
	return m.Rows[len(m.Optional()):]
}

// MatrixOptions tunes matrix construction.
type MatrixOptions struct {
	// FoldCase lower-cases ids so that ids differing only in case share a row.
	FoldCase bool
}

// BuildMatrix builds the extension matrix for profiles. commonProfile names
// the profile whose ids are mandatory; it may be absent from profiles.
func BuildMatrix(profiles []ProfileExtensions, commonProfile string, explanations map[string]string, opts MatrixOptions) *Matrix {
	norm := func(id string) string {
		if opts.FoldCase {
			return strings.ToLower(id)
		}
		return id
	}

	m := &Matrix{}
	// per profile: id -> record, last duplicate wins
	byProfile := make(map[string]map[string]Record, len(profiles))
	ids := map[string]bool{}
	commonSet := map[string]bool{}

	for _, p := range profiles {
		m.Profiles = append(m.Profiles, p.Name)
		recs := make(map[string]Record, len(p.Records))
		for _, r := range p.Records {
			id := norm(r.ID)
			recs[id] = r
			ids[id] = true
			if p.Name == commonProfile {
				commonSet[id] = true
			}
		}
		byProfile[p.Name] = recs
	}

	var lookup map[string]string
	if opts.FoldCase {
		lookup = make(map[string]string, len(explanations))
		for id, text := range explanations {
			lookup[strings.ToLower(id)] = text
		}
	} else {
		lookup = explanations
	}

	var optional, common []Row
	for id := range ids {
		row := Row{
			ID:       id,
			Common:   commonSet[id],
			Statuses: make(map[string]Status, len(profiles)),
		}
		row.Explanation = lookup[id]
		if row.Explanation == "" {
			m.MissingExplanations++
		}
		for _, p := range profiles {
			rec, ok := byProfile[p.Name][id]
			switch {
			case !ok:
				row.Statuses[p.Name] = Absent
			case p.Name == commonProfile:
				row.Statuses[p.Name] = Common
			case rec.Enabled:
				row.Statuses[p.Name] = Enabled
			default:
				row.Statuses[p.Name] = Disabled
			}
		}
		if row.Common {
			common = append(common, row)
		} else {
			optional = append(optional, row)
		}
	}

	sortRows(optional)
	sortRows(common)
	m.Rows = append(optional, common...)
	for _, r := range common {
		m.CommonIDs = append(m.CommonIDs, r.ID)
	}
	return m
}

func sortRows(rows []Row) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
}
