package roster

// MaxPostedIDs caps the persisted posted set
const MaxPostedIDs = 1000

// PostedSet is an insertion-ordered set of posted transaction IDs
type PostedSet struct {
	ids   []string
	index map[string]struct{}
}

// NewPostedSet builds a set from persisted IDs, oldest first
func NewPostedSet(ids []string) *PostedSet {
	s := &PostedSet{index: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Has reports whether id has been posted
func (s *PostedSet) Has(id string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[id]
	return ok
}

// Add records id as posted, dropping the oldest entries beyond MaxPostedIDs
func (s *PostedSet) Add(id string) {
	if s.Has(id) {
		return
	}
	s.ids = append(s.ids, id)
	s.index[id] = struct{}{}

	for len(s.ids) > MaxPostedIDs {
		delete(s.index, s.ids[0])
		s.ids = s.ids[1:]
	}
}

// Len returns the number of IDs in the set
func (s *PostedSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.ids)
}

// IDs returns a copy of the IDs, oldest first
func (s *PostedSet) IDs() []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s.ids))
	copy(out, s.ids)
	return out
}
