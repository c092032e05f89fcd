package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/kursroster/backend/internal/app/auth"
	"github.com/kursroster/backend/internal/app/models"
	"github.com/kursroster/backend/internal/app/models/dto"
	"github.com/kursroster/backend/internal/app/repositories"
	"github.com/kursroster/backend/internal/pkg/apperrors"
	"github.com/kursroster/backend/internal/pkg/logger"
)

// StudentService defines the interface for roster operations
type StudentService interface {
	ListStudents(ctx context.Context, identity models.Identity) ([]models.Student, error)
	CreateStudent(ctx context.Context, identity models.Identity, req *dto.CreateStudentRequest) (*models.Student, error)
	UpdateStudent(ctx context.Context, identity models.Identity, id string, patch models.StudentPatch) (*models.Student, error)
	DeleteStudent(ctx context.Context, identity models.Identity, id string) error
}

// studentServiceImpl implements the StudentService interface
type studentServiceImpl struct {
	store  repositories.RosterStore
	policy *auth.Policy

	// writeMu serializes the whole read-resolve-validate-write sequence of
	// every mutation. Without it two concurrent editors would each write back
	// their own full snapshot and the second would silently drop the first's
	// unrelated changes.
	writeMu sync.Mutex
}

// NewStudentService creates a new student service instance
func NewStudentService(store repositories.RosterStore, policy *auth.Policy) StudentService {
	return &studentServiceImpl{
		store:  store,
		policy: policy,
	}
}

// ListStudents returns the roster scoped to the caller: the full collection
// for the admin, or the participants of the assigned course for a leader.
// The participation filter here is the display-layer one and normalizes case,
// unlike the exact match used for write authorization.
func (s *studentServiceImpl) ListStudents(ctx context.Context, identity models.Identity) ([]models.Student, error) {
	if !identity.Authenticated() {
		return nil, apperrors.ErrNotAuthenticated
	}

	students, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading roster: %w", err)
	}

	if identity.IsAdmin() {
		return students, nil
	}

	course := displayNormalize(identity.Course)
	filtered := make([]models.Student, 0, len(students))
	for _, st := range students {
		if displayNormalize(st.DesiredCourse) == course {
			filtered = append(filtered, st)
			continue
		}
		for _, c := range st.Courses {
			if displayNormalize(c) == course {
				filtered = append(filtered, st)
				break
			}
		}
	}
	return filtered, nil
}

// CreateStudent validates the payload, assigns an id, and appends the record
// after re-checking the course cap against the prospective roster.
func (s *studentServiceImpl) CreateStudent(ctx context.Context, identity models.Identity, req *dto.CreateStudentRequest) (*models.Student, error) {
	if err := s.policy.CanCreate(identity); err != nil {
		return nil, err
	}
	if err := validateCreateRequest(req); err != nil {
		return nil, err
	}

	student := models.Student{
		ID:            uuid.New().String(),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Gender:        strings.TrimSpace(req.Gender),
		BirthDate:     strings.TrimSpace(req.BirthDate),
		School:        strings.TrimSpace(req.School),
		DesiredCourse: strings.TrimSpace(req.DesiredCourse),
		Courses:       models.NormalizeSlots(req.Courses),
		Attendance:    models.NormalizeSlots(req.Attendance),
		AV:            req.AV,
		SV:            req.SV,
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	students, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading roster: %w", err)
	}

	next := append(students, student)
	if err := AssertCourseLimit(DeriveCatalog(next)); err != nil {
		return nil, err
	}

	if err := s.store.WriteAll(ctx, next); err != nil {
		return nil, fmt.Errorf("error writing roster: %w", err)
	}

	logger.Info().Str("studentID", student.ID).Msg("Student created")
	return &student, nil
}

// UpdateStudent applies a partial update under the caller's granted field set
// and commits the full roster back. Failure ordering is authentication, then
// lookup, then authorization, then validation; nothing is written until every
// check has passed.
func (s *studentServiceImpl) UpdateStudent(ctx context.Context, identity models.Identity, id string, patch models.StudentPatch) (*models.Student, error) {
	if !identity.Authenticated() {
		return nil, apperrors.ErrNotAuthenticated
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	students, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading roster: %w", err)
	}

	index := -1
	for i := range students {
		if students[i].ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return nil, apperrors.ErrStudentNotFound
	}
	target := students[index]

	editable, err := s.policy.Authorize(identity, &target, patch.Fields())
	if err != nil {
		return nil, err
	}
	if err := ValidatePatch(patch, editable); err != nil {
		return nil, err
	}

	resolved := ResolveUpdate(target, patch, editable)

	next := make([]models.Student, len(students))
	copy(next, students)
	next[index] = resolved

	// Only admin edits can touch catalog-bearing fields, but deriving is
	// cheap and the gate must hold for the prospective roster as a whole.
	if editable.Has(models.FieldCourses) || editable.Has(models.FieldDesiredCourse) {
		if err := AssertCourseLimit(DeriveCatalog(next)); err != nil {
			return nil, err
		}
	}

	if err := s.store.WriteAll(ctx, next); err != nil {
		return nil, fmt.Errorf("error writing roster: %w", err)
	}

	logger.Info().Str("studentID", id).Str("role", string(identity.Role)).Msg("Student updated")
	return &resolved, nil
}

// DeleteStudent removes exactly one record by id. No catalog revalidation:
// removal can only shrink the catalog.
func (s *studentServiceImpl) DeleteStudent(ctx context.Context, identity models.Identity, id string) error {
	if err := s.policy.CanDelete(identity); err != nil {
		return err
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	students, err := s.store.ReadAll(ctx)
	if err != nil {
		return fmt.Errorf("error reading roster: %w", err)
	}

	next := make([]models.Student, 0, len(students))
	for _, st := range students {
		if st.ID != id {
			next = append(next, st)
		}
	}
	if len(next) == len(students) {
		return apperrors.ErrStudentNotFound
	}

	if err := s.store.WriteAll(ctx, next); err != nil {
		return fmt.Errorf("error writing roster: %w", err)
	}

	logger.Info().Str("studentID", id).Msg("Student deleted")
	return nil
}

// validateCreateRequest enforces the creation payload contract: the five
// identity fields must be non-empty after trimming, arrays must fit the slot
// count. The first offending field is reported.
func validateCreateRequest(req *dto.CreateStudentRequest) error {
	if req == nil {
		return apperrors.NewValidationError("body", "request body is required")
	}

	required := []struct {
		field models.Field
		value string
	}{
		{models.FieldFirstName, req.FirstName},
		{models.FieldLastName, req.LastName},
		{models.FieldGender, req.Gender},
		{models.FieldBirthDate, req.BirthDate},
		{models.FieldSchool, req.School},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apperrors.NewValidationError(string(r.field), "must not be empty")
		}
	}

	if len(req.Courses) > models.SlotCount {
		return apperrors.NewValidationError(string(models.FieldCourses), "at most 6 course slots")
	}
	if len(req.Attendance) > models.SlotCount {
		return apperrors.NewValidationError(string(models.FieldAttendance), "at most 6 attendance slots")
	}
	return nil
}

// displayNormalize is the display-layer course comparison used for listing.
func displayNormalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}
