package dto

import "github.com/kursroster/backend/internal/app/models"

// CreateStudentRequest is the admin payload for creating a student. The five
// master identity fields are mandatory; everything else defaults to empty.
type CreateStudentRequest struct {
	FirstName     string   `json:"firstName" binding:"required"`
	LastName      string   `json:"lastName" binding:"required"`
	Gender        string   `json:"gender" binding:"required"`
	BirthDate     string   `json:"birthDate" binding:"required"`
	School        string   `json:"school" binding:"required"`
	DesiredCourse string   `json:"desiredCourse"`
	Courses       []string `json:"courses" binding:"omitempty,max=6"`
	Attendance    []string `json:"attendance" binding:"omitempty,max=6"`
	AV            string   `json:"av"`
	SV            string   `json:"sv"`
}

// UpdateStudentRequest is the shared partial-update payload. Every field is
// optional; absent fields keep their stored value. Which of the present fields
// the caller may actually change is decided by the authorization policy, not
// by the payload shape.
type UpdateStudentRequest struct {
	FirstName     *string   `json:"firstName"`
	LastName      *string   `json:"lastName"`
	Gender        *string   `json:"gender"`
	BirthDate     *string   `json:"birthDate"`
	School        *string   `json:"school"`
	DesiredCourse *string   `json:"desiredCourse"`
	Courses       *[]string `json:"courses" binding:"omitempty,max=6"`
	Attendance    *[]string `json:"attendance" binding:"omitempty,max=6"`
	AV            *string   `json:"av"`
	SV            *string   `json:"sv"`
}

// ToPatch converts the request into the domain patch consumed by the update
// resolver.
func (r *UpdateStudentRequest) ToPatch() models.StudentPatch {
	return models.StudentPatch{
		FirstName:     r.FirstName,
		LastName:      r.LastName,
		Gender:        r.Gender,
		BirthDate:     r.BirthDate,
		School:        r.School,
		DesiredCourse: r.DesiredCourse,
		Courses:       r.Courses,
		Attendance:    r.Attendance,
		AV:            r.AV,
		SV:            r.SV,
	}
}

// StudentListResponse wraps the roster listing.
type StudentListResponse struct {
	Students []models.Student `json:"students"`
}

// StudentResponse wraps a single student record.
type StudentResponse struct {
	Student models.Student `json:"student"`
}

// CourseListResponse wraps the derived course catalog in display order.
type CourseListResponse struct {
	Courses []string `json:"courses"`
}
