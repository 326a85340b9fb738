package node

import "sort"

// Group is one major release line with its versions in descending order.
type Group struct {
	Major    int
	Versions []Version
}

// Latest returns the newest version in the group.
func (g Group) Latest() Version {
	return g.Versions[0]
}

// GroupByMajor buckets numeric versions by major number. Buckets are
// ordered by major descending and each bucket holds its versions newest
// first. Aliases carry no major number and are dropped. The result is
// derived on demand; the input is never mutated.
func GroupByMajor(versions []Version) []Group {
	buckets := make(map[int][]Version)
	for _, v := range versions {
		if v.IsAlias() {
			continue
		}
		buckets[v.Major] = append(buckets[v.Major], v)
	}

	majors := make([]int, 0, len(buckets))
	for major := range buckets {
		majors = append(majors, major)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(majors)))

	groups := make([]Group, 0, len(majors))
	for _, major := range majors {
		bucket := buckets[major]
		SortDescending(bucket)
		groups = append(groups, Group{Major: major, Versions: bucket})
	}
	return groups
}

// SortDescending orders numeric versions newest first, in place.
// Aliases sort after all numeric versions.
func SortDescending(versions []Version) {
	sort.SliceStable(versions, func(i, j int) bool {
		a, b := versions[i], versions[j]
		if a.IsAlias() || b.IsAlias() {
			return !a.IsAlias() && b.IsAlias()
		}
		cmp, _ := a.Compare(b)
		return cmp > 0
	})
}
