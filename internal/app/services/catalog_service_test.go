package services

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kursroster/backend/internal/app/models"
	"github.com/kursroster/backend/internal/pkg/apperrors"
)

func rosterStudent(desired string, courses ...string) models.Student {
	s := models.Student{
		ID:            "id",
		DesiredCourse: desired,
		Courses:       courses,
	}
	s.Normalize()
	return s
}

func TestDeriveCatalog_DistinctTrimmedNonEmpty(t *testing.T) {
	roster := []models.Student{
		rosterStudent("", "Math"),
		rosterStudent("", "Math"),
		rosterStudent("", " Math "),
		rosterStudent("Biology", "Art"),
		rosterStudent("", ""),
	}

	catalog := DeriveCatalog(roster)

	if len(catalog) != 3 {
		t.Fatalf("expected catalog {Art, Biology, Math}, got %v", catalog)
	}
	want := map[string]bool{"Math": true, "Art": true, "Biology": true}
	for _, c := range catalog {
		if !want[c] {
			t.Errorf("unexpected catalog entry %q", c)
		}
	}
}

func TestDeriveCatalog_EmptyRoster(t *testing.T) {
	if catalog := DeriveCatalog(nil); len(catalog) != 0 {
		t.Errorf("expected empty catalog, got %v", catalog)
	}
}

func TestDeriveCatalog_DisplayOrderIsSorted(t *testing.T) {
	roster := []models.Student{
		rosterStudent("", "Zirkus"),
		rosterStudent("", "Akrobatik"),
		rosterStudent("Musik"),
	}

	catalog := DeriveCatalog(roster)

	want := []string{"Akrobatik", "Musik", "Zirkus"}
	for i, c := range want {
		if catalog[i] != c {
			t.Fatalf("expected display order %v, got %v", want, catalog)
		}
	}
}

func TestAssertCourseLimit_AtCapIsAllowed(t *testing.T) {
	catalog := make([]string, 0, MaxCourses)
	for i := 0; i < MaxCourses; i++ {
		catalog = append(catalog, fmt.Sprintf("Course-%d", i))
	}

	if err := AssertCourseLimit(catalog); err != nil {
		t.Fatalf("a catalog of exactly %d courses must be allowed, got %v", MaxCourses, err)
	}
}

func TestAssertCourseLimit_OverCapRejectedWithCounts(t *testing.T) {
	catalog := make([]string, 0, MaxCourses+1)
	for i := 0; i <= MaxCourses; i++ {
		catalog = append(catalog, fmt.Sprintf("Course-%d", i))
	}

	err := AssertCourseLimit(catalog)
	if !errors.Is(err, apperrors.ErrCourseLimitExceeded) {
		t.Fatalf("expected ErrCourseLimitExceeded, got %v", err)
	}

	var limitErr *apperrors.CourseLimitError
	if !errors.As(err, &limitErr) {
		t.Fatalf("expected CourseLimitError, got %T", err)
	}
	if limitErr.Attempted != MaxCourses+1 || limitErr.Limit != MaxCourses {
		t.Errorf("expected attempted=%d limit=%d, got attempted=%d limit=%d",
			MaxCourses+1, MaxCourses, limitErr.Attempted, limitErr.Limit)
	}
}
