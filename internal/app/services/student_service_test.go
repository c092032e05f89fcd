package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/kursroster/backend/internal/app/auth"
	"github.com/kursroster/backend/internal/app/models"
	"github.com/kursroster/backend/internal/app/models/dto"
	"github.com/kursroster/backend/internal/app/repositories"
	"github.com/kursroster/backend/internal/pkg/apperrors"
)

var (
	adminIdentity = models.Identity{Role: models.RoleAdmin}
	anonymous     = models.Identity{}
)

func leaderOf(course string) models.Identity {
	return models.Identity{Role: models.RoleCourseLeader, Course: course}
}

func newTestService(t *testing.T) (StudentService, repositories.RosterStore) {
	t.Helper()
	store, err := repositories.NewFileRosterStore(filepath.Join(t.TempDir(), "students.json"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	return NewStudentService(store, auth.NewPolicy()), store
}

func seedRoster(t *testing.T, store repositories.RosterStore, students ...models.Student) {
	t.Helper()
	for i := range students {
		students[i].Normalize()
	}
	if err := store.WriteAll(context.Background(), students); err != nil {
		t.Fatalf("failed to seed roster: %v", err)
	}
}

func createRequest() *dto.CreateStudentRequest {
	return &dto.CreateStudentRequest{
		FirstName: "Lena",
		LastName:  "Hoffmann",
		Gender:    "w",
		BirthDate: "2012-03-14",
		School:    "GS Lindenhof",
	}
}

func TestStudentService_CreateStudent_AssignsIDAndPadsSlots(t *testing.T) {
	svc, store := newTestService(t)

	req := createRequest()
	req.DesiredCourse = " Musik "
	req.Courses = []string{"Math"}

	created, err := svc.CreateStudent(context.Background(), adminIdentity, req)
	if err != nil {
		t.Fatalf("CreateStudent failed: %v", err)
	}
	if created.ID == "" {
		t.Error("created student must get an id")
	}
	if created.DesiredCourse != "Musik" {
		t.Errorf("expected trimmed desired course, got %q", created.DesiredCourse)
	}
	if len(created.Courses) != models.SlotCount || len(created.Attendance) != models.SlotCount {
		t.Errorf("arrays must be padded to %d slots, got courses=%d attendance=%d",
			models.SlotCount, len(created.Courses), len(created.Attendance))
	}

	students, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(students) != 1 || students[0].ID != created.ID {
		t.Errorf("created student must be persisted, roster: %+v", students)
	}
}

func TestStudentService_CreateStudent_NonAdminRejected(t *testing.T) {
	svc, store := newTestService(t)

	if _, err := svc.CreateStudent(context.Background(), leaderOf("Math"), createRequest()); !errors.Is(err, apperrors.ErrInsufficientRole) {
		t.Errorf("leader create must fail with ErrInsufficientRole, got %v", err)
	}
	if _, err := svc.CreateStudent(context.Background(), anonymous, createRequest()); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Errorf("anonymous create must fail with ErrNotAuthenticated, got %v", err)
	}

	students, _ := store.ReadAll(context.Background())
	if len(students) != 0 {
		t.Errorf("rejected creates must not write, roster has %d records", len(students))
	}
}

func TestStudentService_CreateStudent_ThirteenthCourseRejected(t *testing.T) {
	svc, store := newTestService(t)

	existing := make([]models.Student, 0, MaxCourses)
	for i := 0; i < MaxCourses; i++ {
		existing = append(existing, models.Student{
			ID:            fmt.Sprintf("id-%d", i),
			FirstName:     "Kind",
			LastName:      "Test",
			Gender:        "d",
			BirthDate:     "2011-01-01",
			School:        "GS",
			DesiredCourse: fmt.Sprintf("Course-%d", i),
		})
	}
	seedRoster(t, store, existing...)

	req := createRequest()
	req.DesiredCourse = "Course-12"

	_, err := svc.CreateStudent(context.Background(), adminIdentity, req)
	if !errors.Is(err, apperrors.ErrCourseLimitExceeded) {
		t.Fatalf("expected course limit rejection, got %v", err)
	}

	var limitErr *apperrors.CourseLimitError
	if !errors.As(err, &limitErr) || limitErr.Attempted != MaxCourses+1 {
		t.Errorf("expected attempted=%d in rejection, got %+v", MaxCourses+1, err)
	}

	students, _ := store.ReadAll(context.Background())
	if len(students) != MaxCourses {
		t.Errorf("rejected create must leave the roster unchanged, got %d records", len(students))
	}
}

func TestStudentService_CreateStudent_ExistingCourseDoesNotCountTwice(t *testing.T) {
	svc, store := newTestService(t)

	existing := make([]models.Student, 0, MaxCourses)
	for i := 0; i < MaxCourses; i++ {
		existing = append(existing, models.Student{
			ID: fmt.Sprintf("id-%d", i), FirstName: "Kind", LastName: "Test",
			Gender: "d", BirthDate: "2011-01-01", School: "GS",
			DesiredCourse: fmt.Sprintf("Course-%d", i),
		})
	}
	seedRoster(t, store, existing...)

	req := createRequest()
	req.DesiredCourse = "Course-0"

	if _, err := svc.CreateStudent(context.Background(), adminIdentity, req); err != nil {
		t.Fatalf("enrolling into an existing course must not trip the cap, got %v", err)
	}
}

func TestStudentService_ListStudents_AdminSeesAll(t *testing.T) {
	svc, store := newTestService(t)
	seedRoster(t, store,
		models.Student{ID: "id-1", DesiredCourse: "Math"},
		models.Student{ID: "id-2", DesiredCourse: "Art"},
	)

	students, err := svc.ListStudents(context.Background(), adminIdentity)
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(students) != 2 {
		t.Errorf("admin must see the whole roster, got %d records", len(students))
	}
}

func TestStudentService_ListStudents_LeaderFilterIsCaseInsensitive(t *testing.T) {
	svc, store := newTestService(t)
	seedRoster(t, store,
		models.Student{ID: "id-1", DesiredCourse: "math"},
		models.Student{ID: "id-2", Courses: []string{"", " Math "}},
		models.Student{ID: "id-3", DesiredCourse: "Art"},
	)

	students, err := svc.ListStudents(context.Background(), leaderOf("Math"))
	if err != nil {
		t.Fatalf("ListStudents failed: %v", err)
	}
	if len(students) != 2 {
		t.Fatalf("expected 2 participants in the listing, got %d", len(students))
	}
	if students[0].ID != "id-1" || students[1].ID != "id-2" {
		t.Errorf("listing must keep roster order, got %s then %s", students[0].ID, students[1].ID)
	}
}

func TestStudentService_ListStudents_AnonymousRejected(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.ListStudents(context.Background(), anonymous); !errors.Is(err, apperrors.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestStudentService_UpdateStudent_LeaderMasterFieldRejectedUnchanged(t *testing.T) {
	svc, store := newTestService(t)
	seedRoster(t, store, models.Student{ID: "id-1", School: "GS Lindenhof", DesiredCourse: "Math"})

	patch := models.StudentPatch{School: strPtr("Other School")}
	_, err := svc.UpdateStudent(context.Background(), leaderOf("Math"), "id-1", patch)
	if !errors.Is(err, apperrors.ErrInsufficientRole) {
		t.Fatalf("expected ErrInsufficientRole, got %v", err)
	}

	students, _ := store.ReadAll(context.Background())
	if students[0].School != "GS Lindenhof" {
		t.Errorf("rejected update must not change the record, school is %q", students[0].School)
	}
}

func TestStudentService_UpdateStudent_LeaderDesiredCourseMatchSuffices(t *testing.T) {
	svc, store := newTestService(t)
	seedRoster(t, store, models.Student{ID: "id-1", DesiredCourse: "Math", AV: "old"})

	patch := models.StudentPatch{
		AV:         strPtr("picked up by bus"),
		Attendance: slicePtr("x", "x"),
	}
	updated, err := svc.UpdateStudent(context.Background(), leaderOf("Math"), "id-1", patch)
	if err != nil {
		t.Fatalf("UpdateStudent failed: %v", err)
	}
	if updated.AV != "picked up by bus" {
		t.Errorf("expected av updated, got %q", updated.AV)
	}
	if updated.Attendance[0] != "x" || updated.Attendance[1] != "x" || updated.Attendance[2] != "" {
		t.Errorf("expected attendance replaced and padded, got %v", updated.Attendance)
	}

	students, _ := store.ReadAll(context.Background())
	if students[0].AV != "picked up by bus" {
		t.Error("update must be persisted")
	}
}

func TestStudentService_UpdateStudent_LeaderWithoutParticipationRejected(t *testing.T) {
	svc, store := newTestService(t)
	seedRoster(t, store, models.Student{ID: "id-1", DesiredCourse: "Art"})

	patch := models.StudentPatch{SV: strPtr("leaves alone")}
	_, err := svc.UpdateStudent(context.Background(), leaderOf("Math"), "id-1", patch)
	if !errors.Is(err, apperrors.ErrNotParticipant) {
		t.Errorf("expected ErrNotParticipant, got %v", err)
	}
}

func TestStudentService_UpdateStudent_UnknownIDReportedBeforeAuthorization(t *testing.T) {
	svc, store := newTestService(t)
	seedRoster(t, store, models.Student{ID: "id-1", DesiredCourse: "Art"})

	// A leader probing an unknown id gets the lookup failure, not a
	// permission failure about a record that does not exist.
	patch := models.StudentPatch{School: strPtr("x")}
	_, err := svc.UpdateStudent(context.Background(), leaderOf("Math"), "missing", patch)
	if !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
}

func TestStudentService_UpdateStudent_AdminOmissionPreservesNotes(t *testing.T) {
	svc, store := newTestService(t)
	seedRoster(t, store, models.Student{ID: "id-1", FirstName: "Lena", AV: "by bike", SV: "with sibling"})

	patch := models.StudentPatch{FirstName: strPtr("Magdalena")}
	updated, err := svc.UpdateStudent(context.Background(), adminIdentity, "id-1", patch)
	if err != nil {
		t.Fatalf("UpdateStudent failed: %v", err)
	}
	if updated.AV != "by bike" || updated.SV != "with sibling" {
		t.Error("omitted av/sv must survive an admin update untouched")
	}
	if updated.FirstName != "Magdalena" {
		t.Errorf("expected first name updated, got %q", updated.FirstName)
	}
}

func TestStudentService_UpdateStudent_CourseCapGuardsEdits(t *testing.T) {
	svc, store := newTestService(t)

	existing := make([]models.Student, 0, MaxCourses)
	for i := 0; i < MaxCourses; i++ {
		existing = append(existing, models.Student{
			ID: fmt.Sprintf("id-%d", i), DesiredCourse: fmt.Sprintf("Course-%d", i),
		})
	}
	seedRoster(t, store, existing...)

	patch := models.StudentPatch{Courses: slicePtr("Course-12")}
	_, err := svc.UpdateStudent(context.Background(), adminIdentity, "id-0", patch)
	if !errors.Is(err, apperrors.ErrCourseLimitExceeded) {
		t.Fatalf("expected course limit rejection, got %v", err)
	}

	students, _ := store.ReadAll(context.Background())
	for _, c := range students[0].Courses {
		if c == "Course-12" {
			t.Error("rejected update must not be persisted")
		}
	}
}

func TestStudentService_UpdateStudent_Idempotent(t *testing.T) {
	svc, store := newTestService(t)
	seedRoster(t, store, models.Student{ID: "id-1", DesiredCourse: "Math"})

	patch := models.StudentPatch{
		Attendance: slicePtr("x", "", "x"),
		AV:         strPtr("note"),
	}

	first, err := svc.UpdateStudent(context.Background(), leaderOf("Math"), "id-1", patch)
	if err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	second, err := svc.UpdateStudent(context.Background(), leaderOf("Math"), "id-1", patch)
	if err != nil {
		t.Fatalf("second update failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated identical updates diverged:\nfirst  %+v\nsecond %+v", first, second)
	}
}

func TestStudentService_DeleteStudent_RemovesExactlyOne(t *testing.T) {
	svc, store := newTestService(t)
	seedRoster(t, store,
		models.Student{ID: "id-1"},
		models.Student{ID: "id-2"},
		models.Student{ID: "id-3"},
	)

	if err := svc.DeleteStudent(context.Background(), adminIdentity, "id-2"); err != nil {
		t.Fatalf("DeleteStudent failed: %v", err)
	}

	students, _ := store.ReadAll(context.Background())
	if len(students) != 2 || students[0].ID != "id-1" || students[1].ID != "id-3" {
		t.Errorf("expected id-2 removed and order preserved, got %+v", students)
	}
}

func TestStudentService_DeleteStudent_UnknownIDRejected(t *testing.T) {
	svc, store := newTestService(t)
	seedRoster(t, store, models.Student{ID: "id-1"})

	if err := svc.DeleteStudent(context.Background(), adminIdentity, "missing"); !errors.Is(err, apperrors.ErrStudentNotFound) {
		t.Errorf("expected ErrStudentNotFound, got %v", err)
	}
	students, _ := store.ReadAll(context.Background())
	if len(students) != 1 {
		t.Errorf("failed delete must not touch the roster, got %d records", len(students))
	}
}

func TestStudentService_UpdateStudent_ConcurrentUpdatesAreNotLost(t *testing.T) {
	svc, store := newTestService(t)

	const n = 16
	existing := make([]models.Student, 0, n)
	for i := 0; i < n; i++ {
		existing = append(existing, models.Student{
			ID: fmt.Sprintf("id-%d", i), FirstName: "Kind", LastName: "Test",
			Gender: "d", BirthDate: "2011-01-01", School: "GS Alt",
			DesiredCourse: "Math",
		})
	}
	seedRoster(t, store, existing...)

	// Each goroutine edits a distinct record. With last-writer-wins whole
	// roster snapshots, most of these edits would vanish.
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			patch := models.StudentPatch{School: strPtr(fmt.Sprintf("GS Neu %d", i))}
			_, errs[i] = svc.UpdateStudent(context.Background(), adminIdentity, fmt.Sprintf("id-%d", i), patch)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("update %d failed: %v", i, err)
		}
	}

	students, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	bySchool := make(map[string]string, len(students))
	for _, st := range students {
		bySchool[st.ID] = st.School
	}
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("id-%d", i)
		want := fmt.Sprintf("GS Neu %d", i)
		if bySchool[id] != want {
			t.Errorf("update to %s was lost: school is %q, want %q", id, bySchool[id], want)
		}
	}
}

func TestStudentService_CreateStudent_ConcurrentCreatesAllPersisted(t *testing.T) {
	svc, store := newTestService(t)

	const n = 8
	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			req := createRequest()
			req.FirstName = fmt.Sprintf("Kind-%d", i)
			req.DesiredCourse = "Math"
			_, errs[i] = svc.CreateStudent(context.Background(), adminIdentity, req)
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("create %d failed: %v", i, err)
		}
	}

	students, err := store.ReadAll(context.Background())
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if len(students) != n {
		t.Errorf("expected all %d concurrent creates persisted, got %d records", n, len(students))
	}
}

func TestStudentService_DeleteStudent_LeaderRejected(t *testing.T) {
	svc, store := newTestService(t)
	seedRoster(t, store, models.Student{ID: "id-1", DesiredCourse: "Math"})

	if err := svc.DeleteStudent(context.Background(), leaderOf("Math"), "id-1"); !errors.Is(err, apperrors.ErrInsufficientRole) {
		t.Errorf("expected ErrInsufficientRole, got %v", err)
	}
}
