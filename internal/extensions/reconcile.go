package extensions

import (
	"sort"
	"strings"
)

// InstalledSet is a case-insensitive set of installed extension ids.
type InstalledSet map[string]bool

// NewInstalledSet builds a set from ids, lower-casing each.
func NewInstalledSet(ids []string) InstalledSet {
	s := make(InstalledSet, len(ids))
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		s[strings.ToLower(id)] = true
	}
	return s
}

// Has reports whether id is installed, ignoring case.
func (s InstalledSet) Has(id string) bool {
	return s[strings.ToLower(id)]
}

// Result partitions the target ids of one run.
type Result struct {
	Targets        []string // desired ∪ common
	ToInstall      []string // not installed; after the install loop, the successes
	AlreadyPresent []string // installed before the run
	Failed         []string // install attempted and failed
}

// Reconcile computes targets = desired ∪ common and splits them by whether
// they are already installed.
func Reconcile(desired, common []string, installed InstalledSet) *Result {
	seen := make(map[string]bool, len(desired)+len(common))
	r := &Result{}
	for _, list := range [][]string{desired, common} {
		for _, id := range list {
			if id == "" || seen[id] {
				continue
			}
			seen[id] = true
			r.Targets = append(r.Targets, id)
		}
	}
	sort.Strings(r.Targets)

	for _, id := range r.Targets {
		if installed.Has(id) {
			r.AlreadyPresent = append(r.AlreadyPresent, id)
		} else {
			r.ToInstall = append(r.ToInstall, id)
		}
	}
	return r
}

// MarkFailed moves id from ToInstall to Failed. It is a no-op for ids that
// are not pending installation.
func (r *Result) MarkFailed(id string) {
	for i, p := range r.ToInstall {
		if p == id {
			r.ToInstall = append(r.ToInstall[:i:i], r.ToInstall[i+1:]...)
			r.Failed = append(r.Failed, id)
			return
		}
	}
}

// Installed returns the ids that were installed during the run. Valid once
// the install loop has reported all failures.
func (r *Result) Installed() []string {
	return r.ToInstall
}
