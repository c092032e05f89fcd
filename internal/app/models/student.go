package models

// SlotCount is the fixed length of the courses and attendance vectors. The two
// are positionally aligned: attendance[i] belongs to the session in courses[i].
const SlotCount = 6

// Student is the sole roster entity. All fields except ID are free text; empty
// string marks an unused course or attendance slot.
type Student struct {
	ID            string   `json:"id"`
	FirstName     string   `json:"firstName"`
	LastName      string   `json:"lastName"`
	Gender        string   `json:"gender"`
	BirthDate     string   `json:"birthDate"`
	School        string   `json:"school"`
	DesiredCourse string   `json:"desiredCourse"`
	Courses       []string `json:"courses"`
	Attendance    []string `json:"attendance"`
	AV            string   `json:"av"`
	SV            string   `json:"sv"`
}

// NormalizeSlots returns a copy of values with exactly SlotCount elements,
// truncating overflow and padding with empty strings. A nil input yields six
// empty slots.
func NormalizeSlots(values []string) []string {
	slots := make([]string, SlotCount)
	for i := 0; i < SlotCount && i < len(values); i++ {
		slots[i] = values[i]
	}
	return slots
}

// Normalize pads or truncates the course and attendance vectors in place so
// the record always round-trips with exactly SlotCount slots each.
func (s *Student) Normalize() {
	s.Courses = NormalizeSlots(s.Courses)
	s.Attendance = NormalizeSlots(s.Attendance)
}

// Participates reports whether the student takes part in the given course:
// either the desired course matches or some course slot does. The comparison
// is an exact string match; this is the authorization-layer check, display
// filtering normalizes case separately.
func (s *Student) Participates(course string) bool {
	if course == "" {
		return false
	}
	if s.DesiredCourse == course {
		return true
	}
	for _, c := range s.Courses {
		if c == course {
			return true
		}
	}
	return false
}

// Clone returns a deep copy so callers can mutate a snapshot without aliasing
// the slices of the original record.
func (s Student) Clone() Student {
	out := s
	out.Courses = append([]string(nil), s.Courses...)
	out.Attendance = append([]string(nil), s.Attendance...)
	return out
}
