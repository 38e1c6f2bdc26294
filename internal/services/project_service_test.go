package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/kutbudev/taskboard/internal/apperr"
)

func TestProjectCreate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	actor := seedUser(t, db, "Ada", "ada@example.com")
	m1 := seedUser(t, db, "Grace", "grace@example.com")
	m2 := seedUser(t, db, "Edsger", "edsger@example.com")

	svc := NewProjectService(db)

	project, err := svc.Create(ctx, actor.ID, CreateProjectInput{
		Name:        "Compilers",
		Description: ptr("lexer first"),
		MemberIDs:   []uuid.UUID{m1.ID, m2.ID},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if project.CreatedByID != actor.ID {
		t.Errorf("creator = %s, want actor %s", project.CreatedByID, actor.ID)
	}
	if len(project.Members) != 2 {
		t.Fatalf("member count = %d, want 2", len(project.Members))
	}
	got := map[uuid.UUID]bool{}
	for _, m := range project.Members {
		got[m.ID] = true
	}
	if !got[m1.ID] || !got[m2.ID] {
		t.Errorf("member set = %v, want exactly the given ids", got)
	}

	// Creator is not implicitly a member.
	if got[actor.ID] {
		t.Error("creator appeared in member set without being connected")
	}
}

func TestProjectCreateValidation(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	actor := seedUser(t, db, "Ada", "ada@example.com")
	svc := NewProjectService(db)

	tests := []struct {
		name    string
		input   CreateProjectInput
		wantErr func(error) bool
	}{
		{
			name:    "empty name",
			input:   CreateProjectInput{Name: ""},
			wantErr: apperr.IsValidation,
		},
		{
			name:    "blank name",
			input:   CreateProjectInput{Name: "   "},
			wantErr: apperr.IsValidation,
		},
		{
			name:    "unknown member id",
			input:   CreateProjectInput{Name: "ok", MemberIDs: []uuid.UUID{uuid.New()}},
			wantErr: apperr.IsNotFound,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Create(ctx, actor.ID, tt.input); err == nil || !tt.wantErr(err) {
				t.Errorf("Create() error = %v, want matching taxonomy", err)
			}
		})
	}
}

func TestProjectAddMemberIdempotent(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	actor := seedUser(t, db, "Ada", "ada@example.com")
	seedUser(t, db, "Grace", "grace@example.com")
	svc := NewProjectService(db)

	project, err := svc.Create(ctx, actor.ID, CreateProjectInput{Name: "Hopper"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	for i := 0; i < 2; i++ {
		project, err = svc.AddMember(ctx, actor.ID, project.ID, "grace@example.com")
		if err != nil {
			t.Fatalf("AddMember() round %d error = %v", i+1, err)
		}
	}
	if len(project.Members) != 1 {
		t.Errorf("member count after double add = %d, want 1", len(project.Members))
	}

	var joins int64
	if err := db.Table("project_members").Where("project_id = ?", project.ID).Count(&joins).Error; err != nil {
		t.Fatalf("count join rows: %v", err)
	}
	if joins != 1 {
		t.Errorf("join rows = %d, want 1", joins)
	}
}

func TestProjectAddMemberUnknownEmail(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	actor := seedUser(t, db, "Ada", "ada@example.com")
	svc := NewProjectService(db)

	project, err := svc.Create(ctx, actor.ID, CreateProjectInput{Name: "Hopper"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := svc.AddMember(ctx, actor.ID, project.ID, "nobody@example.com"); !apperr.IsNotFound(err) {
		t.Errorf("AddMember() error = %v, want NotFoundError", err)
	}
}

func TestProjectUpdate(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	actor := seedUser(t, db, "Ada", "ada@example.com")
	m1 := seedUser(t, db, "Grace", "grace@example.com")
	m2 := seedUser(t, db, "Edsger", "edsger@example.com")
	svc := NewProjectService(db)

	project, err := svc.Create(ctx, actor.ID, CreateProjectInput{
		Name:      "Old name",
		MemberIDs: []uuid.UUID{m1.ID},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	// Partial update: name only, members untouched.
	project, err = svc.Update(ctx, actor.ID, project.ID, ProjectPatch{Name: ptr("New name")})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if project.Name != "New name" {
		t.Errorf("name = %q, want %q", project.Name, "New name")
	}
	if len(project.Members) != 1 {
		t.Errorf("members after name-only patch = %d, want 1", len(project.Members))
	}

	// Member patch replaces the whole set.
	project, err = svc.Update(ctx, actor.ID, project.ID, ProjectPatch{
		MemberIDs: ptr([]uuid.UUID{m2.ID}),
	})
	if err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if len(project.Members) != 1 || project.Members[0].ID != m2.ID {
		t.Errorf("members after replace = %+v, want exactly m2", project.Members)
	}

	if _, err := svc.Update(ctx, actor.ID, project.ID, ProjectPatch{Name: ptr(" ")}); !apperr.IsValidation(err) {
		t.Errorf("Update() with blank name error = %v, want ValidationError", err)
	}
	if _, err := svc.Update(ctx, actor.ID, uuid.New(), ProjectPatch{}); !apperr.IsNotFound(err) {
		t.Errorf("Update() on unknown id error = %v, want NotFoundError", err)
	}
}

func TestProjectDeleteOrphansTasks(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	actor := seedUser(t, db, "Ada", "ada@example.com")
	seedUser(t, db, "Grace", "grace@example.com")
	projects := NewProjectService(db)
	tasks := NewTaskService(db)

	project, err := projects.Create(ctx, actor.ID, CreateProjectInput{Name: "Doomed"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := projects.AddMember(ctx, actor.ID, project.ID, "grace@example.com"); err != nil {
		t.Fatalf("AddMember() error = %v", err)
	}
	task, err := tasks.Create(ctx, actor.ID, CreateTaskInput{Title: "Survivor", ProjectID: &project.ID})
	if err != nil {
		t.Fatalf("create task: %v", err)
	}

	if err := projects.Delete(ctx, actor.ID, project.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := projects.GetByID(ctx, actor.ID, project.ID); !apperr.IsNotFound(err) {
		t.Errorf("GetByID() after delete error = %v, want NotFoundError", err)
	}

	// The task outlives its project, orphaned.
	got, err := tasks.GetByID(ctx, actor.ID, task.ID)
	if err != nil {
		t.Fatalf("task after project delete: %v", err)
	}
	if got.ProjectID != nil {
		t.Errorf("task project id = %v, want nil after orphaning", got.ProjectID)
	}

	var joins int64
	if err := db.Table("project_members").Where("project_id = ?", project.ID).Count(&joins).Error; err != nil {
		t.Fatalf("count join rows: %v", err)
	}
	if joins != 0 {
		t.Errorf("membership rows after delete = %d, want 0", joins)
	}

	if err := projects.Delete(ctx, actor.ID, uuid.New()); !apperr.IsNotFound(err) {
		t.Errorf("Delete() on unknown id error = %v, want NotFoundError", err)
	}
}

func TestProjectOpsRequireActor(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	svc := NewProjectService(db)

	ops := map[string]func() error{
		"Create": func() error {
			_, err := svc.Create(ctx, uuid.Nil, CreateProjectInput{Name: "x"})
			return err
		},
		"AddMember": func() error {
			_, err := svc.AddMember(ctx, uuid.Nil, uuid.New(), "a@b.c")
			return err
		},
		"GetAll": func() error {
			_, err := svc.GetAll(ctx, uuid.Nil)
			return err
		},
		"GetByID": func() error {
			_, err := svc.GetByID(ctx, uuid.Nil, uuid.New())
			return err
		},
		"Update": func() error {
			_, err := svc.Update(ctx, uuid.Nil, uuid.New(), ProjectPatch{})
			return err
		},
		"Delete": func() error {
			return svc.Delete(ctx, uuid.Nil, uuid.New())
		},
	}
	for name, op := range ops {
		if err := op(); !apperr.IsAuthentication(err) {
			t.Errorf("%s without actor: error = %v, want AuthenticationError", name, err)
		}
	}
}

func TestProjectGetAllIncludes(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	actor := seedUser(t, db, "Ada", "ada@example.com")
	member := seedUser(t, db, "Grace", "grace@example.com")
	projects := NewProjectService(db)
	tasks := NewTaskService(db)

	p, err := projects.Create(ctx, actor.ID, CreateProjectInput{
		Name:      "Visible",
		MemberIDs: []uuid.UUID{member.ID},
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if _, err := tasks.Create(ctx, actor.ID, CreateTaskInput{Title: "attached", ProjectID: &p.ID}); err != nil {
		t.Fatalf("create task: %v", err)
	}

	all, err := projects.GetAll(ctx, actor.ID)
	if err != nil {
		t.Fatalf("GetAll() error = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("project count = %d, want 1", len(all))
	}
	if len(all[0].Members) != 1 || len(all[0].Tasks) != 1 {
		t.Errorf("GetAll() members/tasks = %d/%d, want 1/1",
			len(all[0].Members), len(all[0].Tasks))
	}

	if _, err := projects.GetByID(ctx, actor.ID, uuid.New()); !apperr.IsNotFound(err) {
		t.Errorf("GetByID() unknown id error = %v, want NotFoundError", err)
	}
}
