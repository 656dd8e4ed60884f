// FILE: pymodule/config/merge.go
package config

// Merge combines two trees. Every value in overlay wins over base, nested
// tables are merged key by key, and absent overlay entries are skipped.
//
// Neither argument is modified. The result shares no tables with base or
// overlay, so it is safe to keep using base as an accumulator. Merge itself
// lets a table replace a scalar and vice versa; ShapeConflicts reports those
// switches before a merge.
func Merge(base, overlay Tree) Tree {
	out := base.Clone()
	mergeInto(out, overlay)
	return out
}

// mergeInto applies overlay onto dst, which must be owned by the caller.
func mergeInto(dst, overlay Tree) {
	for key, ov := range overlay {
		if ov.IsAbsent() {
			continue
		}

		sub, overlayIsMap := ov.AsMap()
		if !overlayIsMap {
			dst[key] = ov
			continue
		}

		if existing, baseIsMap := dst[key].AsMap(); baseIsMap {
			mergeInto(existing, sub)
			continue
		}

		// The base has no table here, or holds a scalar that the overlay's
		// table replaces wholesale. Validation reports the shape switch.
		fresh := Tree{}
		mergeInto(fresh, sub)
		if len(fresh) == 0 && len(sub) > 0 {
			// The table only held absences.
			continue
		}
		dst[key] = Map(fresh)
	}
}

// ShapeConflicts lists every key where overlay would switch base between a
// table and a scalar. Absent overlay entries, and overlay tables holding only
// absences, never conflict. The result is nil when the trees are compatible.
func ShapeConflicts(base, overlay Tree) []Violation {
	var out []Violation
	collectShapeConflicts("", base, overlay, &out)
	return out
}

func collectShapeConflicts(prefix string, base, overlay Tree, out *[]Violation) {
	for key, ov := range overlay {
		bv, exists := base[key]
		if ov.IsAbsent() || !exists || bv.IsAbsent() {
			continue
		}
		path := joinPath(prefix, key)

		sub, overlayIsMap := ov.AsMap()
		existing, baseIsMap := bv.AsMap()
		switch {
		case overlayIsMap && baseIsMap:
			collectShapeConflicts(path, existing, sub, out)
		case baseIsMap:
			*out = append(*out, &TypeMismatchError{Path: path, Expected: KindMap, Actual: ov.Kind()})
		case overlayIsMap && hasPresent(sub):
			*out = append(*out, &TypeMismatchError{Path: path, Expected: bv.Kind(), Actual: KindMap})
		}
	}
}

// hasPresent reports whether merging t would write anything. An empty table
// counts, since Merge inserts it.
func hasPresent(t Tree) bool {
	if len(t) == 0 {
		return true
	}
	for _, v := range t {
		if v.IsAbsent() {
			continue
		}
		if sub, isMap := v.AsMap(); isMap && !hasPresent(sub) {
			continue
		}
		return true
	}
	return false
}
