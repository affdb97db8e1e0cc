package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/pkg/apperrors"
)

// IRequestRepository defines the interface for request database operations.
// One instance serves a single collection (transcripts or recommendations).
type IRequestRepository interface {
	Kind() models.RequestKind
	Create(ctx context.Context, req *models.Request) error
	GetByID(ctx context.Context, id int64) (*models.Request, error)
	Update(ctx context.Context, req *models.Request) error
	ListByStudent(ctx context.Context, studentID int64) ([]*models.Request, error)
	ListByAssignedStaff(ctx context.Context, staffID int64) ([]*models.Request, error)
	ListAll(ctx context.Context) ([]*models.Request, error)
	ListOverdueCandidates(ctx context.Context, day string) ([]*models.Request, error)
}

// tableForKind maps a request kind to its backing table. The two tables
// share an identical schema so a single repository implementation covers
// both collections.
func tableForKind(kind models.RequestKind) string {
	if kind == models.KindRecommendation {
		return "recommendation_requests"
	}
	return "transcript_requests"
}

// RequestRepository handles request database operations for one collection
type RequestRepository struct {
	db    *pgxpool.Pool
	kind  models.RequestKind
	table string
}

// NewRequestRepository creates a repository bound to the given collection
func NewRequestRepository(db *pgxpool.Pool, kind models.RequestKind) *RequestRepository {
	return &RequestRepository{db: db, kind: kind, table: tableForKind(kind)}
}

// Kind reports which collection this repository serves
func (r *RequestRepository) Kind() models.RequestKind {
	return r.kind
}

const requestColumns = `id, student_id, student_name, student_email,
	first_name, middle_name, last_name, school_id, enrollment_status,
	academic_years, school_email, personal_email, phone_number,
	reason, needed_by_date, collection_method,
	institution_name, institution_address, institution_phone, institution_email,
	status, assigned_staff_id, assigned_staff_name,
	rejection_reason, staff_notes, co_curricular_notes, overdue_notified_date,
	documents, timeline, created_at, updated_at`

func (r *RequestRepository) scan(row pgx.Row) (*models.Request, error) {
	req := &models.Request{Kind: r.kind}
	err := row.Scan(
		&req.ID, &req.StudentID, &req.StudentName, &req.StudentEmail,
		&req.FirstName, &req.MiddleName, &req.LastName, &req.SchoolID, &req.EnrollmentStatus,
		&req.AcademicYears, &req.SchoolEmail, &req.PersonalEmail, &req.PhoneNumber,
		&req.Reason, &req.NeededByDate, &req.CollectionMethod,
		&req.InstitutionName, &req.InstitutionAddress, &req.InstitutionPhone, &req.InstitutionEmail,
		&req.Status, &req.AssignedStaffID, &req.AssignedStaffName,
		&req.RejectionReason, &req.StaffNotes, &req.CoCurricularNotes, &req.OverdueNotifiedDay,
		&req.Documents, &req.Timeline, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Create inserts a new request and assigns the generated ID
func (r *RequestRepository) Create(ctx context.Context, req *models.Request) error {
	err := r.db.QueryRow(ctx, fmt.Sprintf(`
		INSERT INTO %s (student_id, student_name, student_email,
			first_name, middle_name, last_name, school_id, enrollment_status,
			academic_years, school_email, personal_email, phone_number,
			reason, needed_by_date, collection_method,
			institution_name, institution_address, institution_phone, institution_email,
			status, documents, timeline)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18, $19, $20, $21, $22)
		RETURNING id, created_at, updated_at`, r.table),
		req.StudentID, req.StudentName, req.StudentEmail,
		req.FirstName, req.MiddleName, req.LastName, req.SchoolID, req.EnrollmentStatus,
		req.AcademicYears, req.SchoolEmail, req.PersonalEmail, req.PhoneNumber,
		req.Reason, req.NeededByDate, req.CollectionMethod,
		req.InstitutionName, req.InstitutionAddress, req.InstitutionPhone, req.InstitutionEmail,
		req.Status, req.Documents, req.Timeline).
		Scan(&req.ID, &req.CreatedAt, &req.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating request: %w", err)
	}
	return nil
}

// GetByID retrieves a request by ID
func (r *RequestRepository) GetByID(ctx context.Context, id int64) (*models.Request, error) {
	req, err := r.scan(r.db.QueryRow(ctx, fmt.Sprintf(`
		SELECT %s FROM %s WHERE id = $1`, requestColumns, r.table), id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrRequestNotFound
		}
		return nil, fmt.Errorf("error getting request: %w", err)
	}
	return req, nil
}

// Update writes the full mutable row back in a single statement
func (r *RequestRepository) Update(ctx context.Context, req *models.Request) error {
	tag, err := r.db.Exec(ctx, fmt.Sprintf(`
		UPDATE %s SET
			first_name = $2, middle_name = $3, last_name = $4,
			school_id = $5, enrollment_status = $6, academic_years = $7,
			school_email = $8, personal_email = $9, phone_number = $10,
			reason = $11, needed_by_date = $12, collection_method = $13,
			institution_name = $14, institution_address = $15,
			institution_phone = $16, institution_email = $17,
			status = $18, assigned_staff_id = $19, assigned_staff_name = $20,
			rejection_reason = $21, staff_notes = $22, co_curricular_notes = $23,
			overdue_notified_date = $24, documents = $25, timeline = $26,
			updated_at = NOW()
		WHERE id = $1`, r.table),
		req.ID,
		req.FirstName, req.MiddleName, req.LastName,
		req.SchoolID, req.EnrollmentStatus, req.AcademicYears,
		req.SchoolEmail, req.PersonalEmail, req.PhoneNumber,
		req.Reason, req.NeededByDate, req.CollectionMethod,
		req.InstitutionName, req.InstitutionAddress,
		req.InstitutionPhone, req.InstitutionEmail,
		req.Status, req.AssignedStaffID, req.AssignedStaffName,
		req.RejectionReason, req.StaffNotes, req.CoCurricularNotes,
		req.OverdueNotifiedDay, req.Documents, req.Timeline)
	if err != nil {
		return fmt.Errorf("error updating request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrRequestNotFound
	}
	return nil
}

// ListByStudent retrieves all requests created by the given student
func (r *RequestRepository) ListByStudent(ctx context.Context, studentID int64) ([]*models.Request, error) {
	return r.list(ctx, fmt.Sprintf(`
		SELECT %s FROM %s WHERE student_id = $1 ORDER BY created_at DESC`,
		requestColumns, r.table), studentID)
}

// ListByAssignedStaff retrieves all requests assigned to the given staff member
func (r *RequestRepository) ListByAssignedStaff(ctx context.Context, staffID int64) ([]*models.Request, error) {
	return r.list(ctx, fmt.Sprintf(`
		SELECT %s FROM %s WHERE assigned_staff_id = $1 ORDER BY created_at DESC`,
		requestColumns, r.table), staffID)
}

// ListAll retrieves every request in the collection
func (r *RequestRepository) ListAll(ctx context.Context) ([]*models.Request, error) {
	return r.list(ctx, fmt.Sprintf(`
		SELECT %s FROM %s ORDER BY created_at DESC`, requestColumns, r.table))
}

// ListOverdueCandidates retrieves active requests whose needed-by date has
// passed and that have not yet produced an overdue notification for the
// given day. Day is formatted as 2006-01-02.
func (r *RequestRepository) ListOverdueCandidates(ctx context.Context, day string) ([]*models.Request, error) {
	return r.list(ctx, fmt.Sprintf(`
		SELECT %s FROM %s
		WHERE status NOT IN ('Completed', 'Rejected')
		  AND needed_by_date < $1
		  AND (overdue_notified_date IS NULL OR overdue_notified_date <> $1)
		ORDER BY needed_by_date`, requestColumns, r.table), day)
}

func (r *RequestRepository) list(ctx context.Context, query string, args ...interface{}) ([]*models.Request, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing requests: %w", err)
	}
	defer rows.Close()

	requests := []*models.Request{}
	for rows.Next() {
		req, err := r.scan(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning request: %w", err)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return requests, nil
}
