package services

import (
	"strings"

	"github.com/kursroster/backend/internal/app/models"
	"github.com/kursroster/backend/internal/pkg/apperrors"
)

// requiredMasterFields lists the master fields that must stay non-empty, in
// the order validation failures are reported.
var requiredMasterFields = []models.Field{
	models.FieldFirstName,
	models.FieldLastName,
	models.FieldGender,
	models.FieldBirthDate,
	models.FieldSchool,
}

// ValidatePatch checks the granted fields of a partial update. Master identity
// fields, when present and granted, must be non-empty after trimming; the
// array fields must fit the slot count. The first offending field wins.
func ValidatePatch(patch models.StudentPatch, editable models.FieldSet) error {
	scalars := map[models.Field]*string{
		models.FieldFirstName: patch.FirstName,
		models.FieldLastName:  patch.LastName,
		models.FieldGender:    patch.Gender,
		models.FieldBirthDate: patch.BirthDate,
		models.FieldSchool:    patch.School,
	}
	for _, f := range requiredMasterFields {
		value := scalars[f]
		if value == nil || !editable.Has(f) {
			continue
		}
		if strings.TrimSpace(*value) == "" {
			return apperrors.NewValidationError(string(f), "must not be empty")
		}
	}

	if patch.Courses != nil && editable.Has(models.FieldCourses) && len(*patch.Courses) > models.SlotCount {
		return apperrors.NewValidationError(string(models.FieldCourses), "at most 6 course slots")
	}
	if patch.Attendance != nil && editable.Has(models.FieldAttendance) && len(*patch.Attendance) > models.SlotCount {
		return apperrors.NewValidationError(string(models.FieldAttendance), "at most 6 attendance slots")
	}
	return nil
}

// ResolveUpdate overlays the granted fields of the patch onto the existing
// record and returns the merged result. Fields outside the granted set are
// always taken from the existing record, even when the payload carries them,
// so over-posting cannot smuggle changes past the policy. Absent fields keep
// their stored value; array fields are renormalized to exactly six slots.
func ResolveUpdate(existing models.Student, patch models.StudentPatch, editable models.FieldSet) models.Student {
	out := existing.Clone()

	if patch.FirstName != nil && editable.Has(models.FieldFirstName) {
		out.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil && editable.Has(models.FieldLastName) {
		out.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Gender != nil && editable.Has(models.FieldGender) {
		out.Gender = strings.TrimSpace(*patch.Gender)
	}
	if patch.BirthDate != nil && editable.Has(models.FieldBirthDate) {
		out.BirthDate = strings.TrimSpace(*patch.BirthDate)
	}
	if patch.School != nil && editable.Has(models.FieldSchool) {
		out.School = strings.TrimSpace(*patch.School)
	}
	if patch.DesiredCourse != nil && editable.Has(models.FieldDesiredCourse) {
		out.DesiredCourse = strings.TrimSpace(*patch.DesiredCourse)
	}
	if patch.Courses != nil && editable.Has(models.FieldCourses) {
		out.Courses = models.NormalizeSlots(*patch.Courses)
	}
	if patch.Attendance != nil && editable.Has(models.FieldAttendance) {
		out.Attendance = models.NormalizeSlots(*patch.Attendance)
	}
	if patch.AV != nil && editable.Has(models.FieldAV) {
		out.AV = *patch.AV
	}
	if patch.SV != nil && editable.Has(models.FieldSV) {
		out.SV = *patch.SV
	}

	out.Normalize()
	return out
}
