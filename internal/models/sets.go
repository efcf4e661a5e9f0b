package models

// HasID reports whether id is present in ids.
func HasID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

// AddID returns ids with id appended if not already present.
func AddID(ids []string, id string) []string {
	if HasID(ids, id) {
		return ids
	}
	return append(ids, id)
}

// RemoveID returns ids with every occurrence of id removed.
func RemoveID(ids []string, id string) []string {
	if !HasID(ids, id) {
		return ids
	}
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}
