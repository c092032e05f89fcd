package services

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/kursroster/backend/internal/app/models"
	"github.com/kursroster/backend/internal/app/repositories"
	"github.com/kursroster/backend/internal/pkg/apperrors"
)

// MaxCourses caps the distinct course catalog across the whole roster. The
// cap counts the union of every non-empty course slot and desired course, and
// is enforced against the prospective roster before any write commits.
const MaxCourses = 12

// DeriveCatalog computes the distinct, trimmed, non-empty set of course names
// referenced anywhere in the roster, in locale-aware display order. The
// catalog has no persistent identity of its own: it is recomputed from the
// roster on demand and never cached across requests.
func DeriveCatalog(students []models.Student) []string {
	seen := make(map[string]struct{})
	catalog := make([]string, 0)

	add := func(name string) {
		name = strings.TrimSpace(name)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		catalog = append(catalog, name)
	}

	for i := range students {
		add(students[i].DesiredCourse)
		for _, course := range students[i].Courses {
			add(course)
		}
	}

	collate.New(language.German).SortStrings(catalog)
	return catalog
}

// AssertCourseLimit rejects a prospective catalog that exceeds MaxCourses.
// This is an all-or-nothing gate: the caller must abort the whole write.
func AssertCourseLimit(catalog []string) error {
	if len(catalog) > MaxCourses {
		return apperrors.NewCourseLimitError(len(catalog), MaxCourses)
	}
	return nil
}

// CourseService exposes the derived course catalog.
type CourseService interface {
	ListCourses(ctx context.Context) ([]string, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	store repositories.RosterStore
}

// NewCourseService creates a new course service instance
func NewCourseService(store repositories.RosterStore) CourseService {
	return &courseServiceImpl{store: store}
}

// ListCourses derives the catalog from a fresh roster snapshot.
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]string, error) {
	students, err := s.store.ReadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error reading roster: %w", err)
	}
	return DeriveCatalog(students), nil
}
