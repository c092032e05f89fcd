package models

// Role identifies the kind of caller behind a request.
type Role string

const (
	// RoleAdmin maintains master records for the whole roster.
	RoleAdmin Role = "admin"
	// RoleCourseLeader may record attendance, AV and SV for students
	// participating in their assigned course.
	RoleCourseLeader Role = "course"
	// RoleNone is an unauthenticated or malformed session.
	RoleNone Role = ""
)

// Identity is what the session layer supplies per request: the caller's role
// and, for course leaders, their assigned course name. The roster core treats
// it as opaque input and never validates credentials itself.
type Identity struct {
	Role   Role
	Course string
}

// Authenticated reports whether the identity carries a known role.
func (i Identity) Authenticated() bool {
	return i.Role == RoleAdmin || i.Role == RoleCourseLeader
}

// IsAdmin reports whether the identity is the administrator.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// IsCourseLeader reports whether the identity is a course leader with an
// assigned course.
func (i Identity) IsCourseLeader() bool {
	return i.Role == RoleCourseLeader && i.Course != ""
}
