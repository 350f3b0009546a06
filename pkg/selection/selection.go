package selection

import (
	"encoding/json"
	"fmt"
)

// Mode decides how a selection's index set is interpreted.
type Mode int

const (
	// ModeExclude selects every index of the space except those in the
	// set. The zero value, so an empty Selection covers the whole space.
	ModeExclude Mode = iota
	// ModeInclude selects only the indices in the set.
	ModeInclude
)

var modeToString = map[Mode]string{
	ModeExclude: "exclude",
	ModeInclude: "include",
}

var modeFromString = map[string]Mode{
	"exclude": ModeExclude,
	"include": ModeInclude,
}

// String returns the JSON name of the mode.
func (m Mode) String() string {
	if s, ok := modeToString[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// MarshalJSON encodes the mode as its string name.
func (m Mode) MarshalJSON() ([]byte, error) {
	s, ok := modeToString[m]
	if !ok {
		return nil, fmt.Errorf("unknown selection mode %d", int(m))
	}
	return json.Marshal(s)
}

// UnmarshalJSON decodes a mode from its string name.
func (m *Mode) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("decode mode: %w", err)
	}
	mode, ok := modeFromString[s]
	if !ok {
		return fmt.Errorf("unknown selection mode %q", s)
	}
	*m = mode
	return nil
}

// Selection names the subset of a space an export covers. The zero value
// excludes nothing, so it selects the entire space.
type Selection struct {
	Mode    Mode `json:"mode"`
	Indices Set  `json:"indices,omitempty"`
}

// Count returns how many indices of a space of the given size the
// selection covers. Set members at or beyond the space size are ignored.
func (sel Selection) Count(spaceSize uint64) uint64 {
	in := uint64(sel.Indices.below(spaceSize))
	if sel.Mode == ModeInclude {
		return in
	}
	return spaceSize - in
}

// Stream returns an ascending enumerator over the selected indices of a
// space of the given size.
func (sel Selection) Stream(spaceSize uint64) *Stream {
	return &Stream{sel: sel, size: spaceSize}
}

// Stream walks a selection in ascending index order. In exclude mode it
// scans the space and skips excluded indices; in include mode it walks the
// set directly. Either way no index list proportional to the space size is
// ever materialized.
type Stream struct {
	sel  Selection
	size uint64
	next uint64 // exclude mode: next space index to consider
	pos  int    // position in the index set
}

// Next returns the next selected index. The second result is false once
// the stream is exhausted.
func (st *Stream) Next() (uint64, bool) {
	if st.sel.Mode == ModeInclude {
		for st.pos < len(st.sel.Indices) {
			v := st.sel.Indices[st.pos]
			st.pos++
			if v < st.size {
				return v, true
			}
		}
		return 0, false
	}
	for st.next < st.size {
		v := st.next
		st.next++
		for st.pos < len(st.sel.Indices) && st.sel.Indices[st.pos] < v {
			st.pos++
		}
		if st.pos < len(st.sel.Indices) && st.sel.Indices[st.pos] == v {
			continue
		}
		return v, true
	}
	return 0, false
}
