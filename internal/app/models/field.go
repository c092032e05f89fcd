package models

// Field names a mutable Student attribute as it appears on the wire. The
// authorization policy hands out sets of these; the update resolver only
// overlays attributes whose field is in the granted set.
type Field string

const (
	FieldFirstName     Field = "firstName"
	FieldLastName      Field = "lastName"
	FieldGender        Field = "gender"
	FieldBirthDate     Field = "birthDate"
	FieldSchool        Field = "school"
	FieldDesiredCourse Field = "desiredCourse"
	FieldCourses       Field = "courses"
	FieldAttendance    Field = "attendance"
	FieldAV            Field = "av"
	FieldSV            Field = "sv"
)

// FieldSet is a set of student fields.
type FieldSet map[Field]struct{}

// NewFieldSet creates a set from the given fields
func NewFieldSet(fields ...Field) FieldSet {
	set := make(FieldSet, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// Has reports whether the field is in the set.
func (s FieldSet) Has(f Field) bool {
	_, ok := s[f]
	return ok
}

// MasterFields returns the admin-owned identity and enrollment fields.
func MasterFields() FieldSet {
	return NewFieldSet(
		FieldFirstName, FieldLastName, FieldGender, FieldBirthDate,
		FieldSchool, FieldDesiredCourse, FieldCourses,
	)
}

// LeaderFields returns the fixed allow-list a course leader may write.
func LeaderFields() FieldSet {
	return NewFieldSet(FieldAttendance, FieldAV, FieldSV)
}

// AllFields returns every mutable field (everything except the id).
func AllFields() FieldSet {
	return NewFieldSet(
		FieldFirstName, FieldLastName, FieldGender, FieldBirthDate,
		FieldSchool, FieldDesiredCourse, FieldCourses,
		FieldAttendance, FieldAV, FieldSV,
	)
}
