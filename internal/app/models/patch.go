package models

// StudentPatch is a partial update: nil means the field was absent from the
// payload and must preserve the prior value. Whole-object replacement would
// let an admin edit of master fields silently wipe a leader's AV/SV entries,
// so merges are always field by field.
type StudentPatch struct {
	FirstName     *string
	LastName      *string
	Gender        *string
	BirthDate     *string
	School        *string
	DesiredCourse *string
	Courses       *[]string
	Attendance    *[]string
	AV            *string
	SV            *string
}

// Fields returns the fields present in the patch.
func (p StudentPatch) Fields() []Field {
	fields := make([]Field, 0, 10)
	if p.FirstName != nil {
		fields = append(fields, FieldFirstName)
	}
	if p.LastName != nil {
		fields = append(fields, FieldLastName)
	}
	if p.Gender != nil {
		fields = append(fields, FieldGender)
	}
	if p.BirthDate != nil {
		fields = append(fields, FieldBirthDate)
	}
	if p.School != nil {
		fields = append(fields, FieldSchool)
	}
	if p.DesiredCourse != nil {
		fields = append(fields, FieldDesiredCourse)
	}
	if p.Courses != nil {
		fields = append(fields, FieldCourses)
	}
	if p.Attendance != nil {
		fields = append(fields, FieldAttendance)
	}
	if p.AV != nil {
		fields = append(fields, FieldAV)
	}
	if p.SV != nil {
		fields = append(fields, FieldSV)
	}
	return fields
}
