package auth

import (
	"github.com/kursroster/backend/internal/app/models"
	"github.com/kursroster/backend/internal/pkg/apperrors"
)

// Policy decides, per request, which student fields the caller may change and
// whether the target record is in scope at all. All role dispatch lives here;
// callers never compare role strings themselves.
type Policy struct{}

// NewPolicy creates a new authorization policy
func NewPolicy() *Policy {
	return &Policy{}
}

// Authorize checks the identity against the target student and the set of
// fields the payload asks to change, and returns the granted field set.
//
// Authentication is checked first. Admins may change every requested field
// except the id, which is immutable after creation. Course leaders are held to
// the fixed allow-list (attendance, av, sv); any other requested field fails
// with ErrInsufficientRole before the participation check runs. Participation
// is an exact string match between the assigned course and the target's
// desired course or any course slot.
func (p *Policy) Authorize(identity models.Identity, target *models.Student, requested []models.Field) (models.FieldSet, error) {
	switch identity.Role {
	case models.RoleAdmin:
		return grant(requested, models.AllFields()), nil

	case models.RoleCourseLeader:
		if identity.Course == "" {
			return nil, apperrors.ErrNotAuthenticated
		}
		allowed := models.LeaderFields()
		for _, f := range requested {
			if !allowed.Has(f) {
				return nil, apperrors.ErrInsufficientRole
			}
		}
		if target == nil || !target.Participates(identity.Course) {
			return nil, apperrors.ErrNotParticipant
		}
		return grant(requested, allowed), nil

	case models.RoleNone:
		return nil, apperrors.ErrNotAuthenticated

	default:
		// Unknown role values from a stale or forged token.
		return nil, apperrors.ErrNotAuthenticated
	}
}

// CanCreate reports whether the identity may create student records.
func (p *Policy) CanCreate(identity models.Identity) error {
	if !identity.Authenticated() {
		return apperrors.ErrNotAuthenticated
	}
	if !identity.IsAdmin() {
		return apperrors.ErrInsufficientRole
	}
	return nil
}

// CanDelete reports whether the identity may delete student records. Deletion
// is admin-only and unconditional: removing a record can never grow the course
// catalog, so no catalog revalidation is required.
func (p *Policy) CanDelete(identity models.Identity) error {
	return p.CanCreate(identity)
}

// grant intersects the requested fields with the allowed set.
func grant(requested []models.Field, allowed models.FieldSet) models.FieldSet {
	granted := make(models.FieldSet, len(requested))
	for _, f := range requested {
		if allowed.Has(f) {
			granted[f] = struct{}{}
		}
	}
	return granted
}
