package menu

import "strings"

// ItemID is the path of segments from the root menu down to a node. Segments
// are positional indices unless a template carries an explicit stable id.
// Once a node is bound its id never changes for the rest of the invocation.
type ItemID []string

// RootID is the id every root menu is built under.
var RootID = ItemID{"root"}

// String joins the segments with dots; this is the key format used for
// per-item state in the metadata blob.
func (id ItemID) String() string {
	return strings.Join(id, ".")
}

// Child returns a new id extended by one segment.
func (id ItemID) Child(segment string) ItemID {
	child := make(ItemID, 0, len(id)+1)
	child = append(child, id...)
	return append(child, segment)
}

func (id ItemID) Equal(other ItemID) bool {
	if len(id) != len(other) {
		return false
	}
	for i := range id {
		if id[i] != other[i] {
			return false
		}
	}
	return true
}

// IsPrefixOf reports whether id is an ancestor-or-self of other.
func (id ItemID) IsPrefixOf(other ItemID) bool {
	if len(id) == 0 || len(id) > len(other) {
		return false
	}
	return id.Equal(other[:len(id)])
}

// itemIDFrom rebuilds an ItemID from a JSON-decoded value. Ids round-trip
// through the info payload as arrays of strings.
func itemIDFrom(raw any) ItemID {
	switch v := raw.(type) {
	case ItemID:
		return append(ItemID(nil), v...)
	case []string:
		return append(ItemID(nil), v...)
	case []any:
		id := make(ItemID, 0, len(v))
		for _, seg := range v {
			s, ok := seg.(string)
			if !ok {
				return nil
			}
			id = append(id, s)
		}
		return id
	}
	return nil
}
