package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/campushare/campushare-backend/internal/domain"
)

func PtrUUID(id uuid.UUID) *uuid.UUID { return &id }

func PtrInt(v int) *int { return &v }

func PtrString(v string) *string { return &v }

func SeedInstitution(tb testing.TB, ctx context.Context, tx *gorm.DB, name string) *types.Institution {
	tb.Helper()
	inst := &types.Institution{
		ID:   uuid.New(),
		Name: name,
	}
	if err := tx.WithContext(ctx).Create(inst).Error; err != nil {
		tb.Fatalf("seed institution: %v", err)
	}
	return inst
}

func SeedDepartment(tb testing.TB, ctx context.Context, tx *gorm.DB, institutionID *uuid.UUID, name string) *types.Department {
	tb.Helper()
	dept := &types.Department{
		ID:            uuid.New(),
		InstitutionID: institutionID,
		Name:          name,
	}
	if err := tx.WithContext(ctx).Create(dept).Error; err != nil {
		tb.Fatalf("seed department: %v", err)
	}
	return dept
}

func SeedCourse(tb testing.TB, ctx context.Context, tx *gorm.DB, institutionID, departmentID uuid.UUID, code string, level int) *types.Course {
	tb.Helper()
	course := &types.Course{
		ID:            uuid.New(),
		InstitutionID: institutionID,
		DepartmentID:  departmentID,
		Code:          code,
		Title:         code,
		Level:         level,
	}
	if err := tx.WithContext(ctx).Create(course).Error; err != nil {
		tb.Fatalf("seed course: %v", err)
	}
	return course
}

func SeedResource(tb testing.TB, ctx context.Context, tx *gorm.DB, course *types.Course, uploaderID uuid.UUID, title string, createdAt time.Time) *types.Resource {
	tb.Helper()
	res := &types.Resource{
		ID:            uuid.New(),
		InstitutionID: course.InstitutionID,
		DepartmentID:  course.DepartmentID,
		CourseID:      course.ID,
		UploaderID:    uploaderID,
		Title:         title,
		Type:          types.ResourceTypeLectureNote,
		Level:         course.Level,
		Session:       "2025/2026",
		FileURL:       "https://storage.example/" + title,
		CreatedAt:     createdAt,
	}
	if err := tx.WithContext(ctx).Create(res).Error; err != nil {
		tb.Fatalf("seed resource: %v", err)
	}
	return res
}

func SeedComment(tb testing.TB, ctx context.Context, tx *gorm.DB, resourceID, authorID uuid.UUID, body string) *types.Comment {
	tb.Helper()
	comment := &types.Comment{
		ID:         uuid.New(),
		ResourceID: resourceID,
		AuthorID:   authorID,
		Body:       body,
	}
	if err := tx.WithContext(ctx).Create(comment).Error; err != nil {
		tb.Fatalf("seed comment: %v", err)
	}
	return comment
}

func SeedReport(tb testing.TB, ctx context.Context, tx *gorm.DB, resource *types.Resource, reporterID uuid.UUID, reason string) *types.Report {
	tb.Helper()
	report := &types.Report{
		ID:            uuid.New(),
		ResourceID:    resource.ID,
		InstitutionID: resource.InstitutionID,
		ReporterID:    reporterID,
		Reason:        reason,
		Status:        types.ReportStatusPending,
	}
	if err := tx.WithContext(ctx).Create(report).Error; err != nil {
		tb.Fatalf("seed report: %v", err)
	}
	return report
}
