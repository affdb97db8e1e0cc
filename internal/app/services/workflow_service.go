package services

import (
	"context"
	"fmt"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/campusworks/transcript-tracker/internal/app/auth"
	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/app/models/dto"
	"github.com/campusworks/transcript-tracker/internal/app/repositories"
	"github.com/campusworks/transcript-tracker/internal/pkg/apperrors"
	"github.com/campusworks/transcript-tracker/internal/pkg/email"
	"github.com/campusworks/transcript-tracker/internal/pkg/filestorage"
)

const dateLayout = "2006-01-02"

// WorkflowService drives the request lifecycle: submission, student edits,
// staff processing, document handling. All writes go through a single
// full-row update so each operation is atomic per request.
type WorkflowService struct {
	userRepo        repositories.IUserRepository
	transcripts     repositories.IRequestRepository
	recommendations repositories.IRequestRepository
	notifications   *NotificationService
	storage         filestorage.FileStorage
	logger          zerolog.Logger
}

// NewWorkflowService creates a new WorkflowService
func NewWorkflowService(
	userRepo repositories.IUserRepository,
	transcripts repositories.IRequestRepository,
	recommendations repositories.IRequestRepository,
	notifications *NotificationService,
	storage filestorage.FileStorage,
	logger zerolog.Logger,
) *WorkflowService {
	return &WorkflowService{
		userRepo:        userRepo,
		transcripts:     transcripts,
		recommendations: recommendations,
		notifications:   notifications,
		storage:         storage,
		logger:          logger,
	}
}

func (s *WorkflowService) repoFor(kind models.RequestKind) (repositories.IRequestRepository, error) {
	switch kind {
	case models.KindTranscript:
		return s.transcripts, nil
	case models.KindRecommendation:
		return s.recommendations, nil
	}
	return nil, apperrors.NewValidationError(fmt.Sprintf("unknown request kind: %s", kind))
}

func (s *WorkflowService) actor(ctx context.Context, actorID int64) (*models.User, error) {
	actor, err := s.userRepo.GetByID(ctx, actorID)
	if err != nil {
		return nil, err
	}
	return actor, nil
}

func requestRef(req *models.Request) (*int64, *models.RequestKind) {
	id := req.ID
	kind := req.Kind
	return &id, &kind
}

// Submit creates a new request in Pending with its opening timeline entry
func (s *WorkflowService) Submit(ctx context.Context, actorID int64, kind models.RequestKind, input *dto.CreateRequestRequest) (*models.Request, error) {
	repo, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := auth.Require(actor.Role, auth.PermSubmitRequest); err != nil {
		return nil, err
	}
	if _, err := time.Parse(dateLayout, input.NeededByDate); err != nil {
		return nil, apperrors.NewValidationError("neededByDate must be formatted as YYYY-MM-DD")
	}
	for _, yr := range input.AcademicYears {
		if yr.FromYear <= 0 || yr.ToYear < yr.FromYear {
			return nil, apperrors.NewValidationError("academicYears entries must have fromYear <= toYear")
		}
	}

	now := time.Now().UTC()
	req := &models.Request{
		Kind:             kind,
		StudentID:        actor.ID,
		StudentName:      actor.FullName,
		StudentEmail:     actor.Email,
		FirstName:        input.FirstName,
		MiddleName:       input.MiddleName,
		LastName:         input.LastName,
		SchoolID:         input.SchoolID,
		EnrollmentStatus: input.EnrollmentStatus,
		AcademicYears:    input.AcademicYears,
		SchoolEmail:      input.SchoolEmail,
		PersonalEmail:    input.PersonalEmail,
		PhoneNumber:      input.PhoneNumber,
		Reason:           input.Reason,
		NeededByDate:     input.NeededByDate,
		CollectionMethod: input.CollectionMethod,

		InstitutionName:    input.InstitutionName,
		InstitutionAddress: input.InstitutionAddress,
		InstitutionPhone:   input.InstitutionPhone,
		InstitutionEmail:   input.InstitutionEmail,

		Status:    models.StatusPending,
		Documents: []models.DocumentEntry{},
	}
	req.AppendTimeline(models.StatusPending, "Request submitted", actor.FullName, now)

	if err := repo.Create(ctx, req); err != nil {
		return nil, err
	}

	reqID, reqKind := requestRef(req)
	s.notifications.NotifyAdmins(ctx, func(userID int64) *models.Notification {
		return &models.Notification{
			UserID:      userID,
			Title:       fmt.Sprintf("New %s Request", kind.Label()),
			Message:     fmt.Sprintf("%s submitted a new %s request", actor.FullName, strings.ToLower(kind.Label())),
			Type:        models.NotificationNewRequest,
			RequestID:   reqID,
			RequestKind: reqKind,
		}
	})

	return req, nil
}

// StudentEdit applies a student's changes to their own request. Editing is
// only allowed while the request is still Pending; a request already picked
// up by the office is immutable to the student.
func (s *WorkflowService) StudentEdit(ctx context.Context, actorID int64, kind models.RequestKind, id int64, input *dto.StudentEditRequest) (*models.Request, error) {
	repo, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := auth.Require(actor.Role, auth.PermEditOwnRequest); err != nil {
		return nil, err
	}

	req, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.StudentID != actor.ID {
		return nil, apperrors.ErrPermissionDenied
	}
	if req.Status != models.StatusPending {
		return nil, apperrors.NewInvalidStateError(
			fmt.Sprintf("this request cannot be edited because its status is '%s'. Only pending requests can be modified", req.Status))
	}

	if input.NeededByDate != nil {
		if _, err := time.Parse(dateLayout, *input.NeededByDate); err != nil {
			return nil, apperrors.NewValidationError("neededByDate must be formatted as YYYY-MM-DD")
		}
	}
	if input.AcademicYears != nil {
		for _, yr := range *input.AcademicYears {
			if yr.FromYear <= 0 || yr.ToYear < yr.FromYear {
				return nil, apperrors.NewValidationError("academicYears entries must have fromYear <= toYear")
			}
		}
	}

	applyIf := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	applyIf(&req.FirstName, input.FirstName)
	applyIf(&req.MiddleName, input.MiddleName)
	applyIf(&req.LastName, input.LastName)
	applyIf(&req.SchoolID, input.SchoolID)
	applyIf(&req.EnrollmentStatus, input.EnrollmentStatus)
	applyIf(&req.SchoolEmail, input.SchoolEmail)
	applyIf(&req.PersonalEmail, input.PersonalEmail)
	applyIf(&req.PhoneNumber, input.PhoneNumber)
	applyIf(&req.Reason, input.Reason)
	applyIf(&req.NeededByDate, input.NeededByDate)
	applyIf(&req.CollectionMethod, input.CollectionMethod)
	applyIf(&req.InstitutionName, input.InstitutionName)
	applyIf(&req.InstitutionAddress, input.InstitutionAddress)
	applyIf(&req.InstitutionPhone, input.InstitutionPhone)
	applyIf(&req.InstitutionEmail, input.InstitutionEmail)
	if input.AcademicYears != nil {
		req.AcademicYears = *input.AcademicYears
	}

	req.AppendTimeline(req.Status, "Request details updated by student", actor.FullName, time.Now().UTC())

	if err := repo.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// StaffUpdate applies the office's patch to a request. Fields are processed
// in a fixed order: status change, staff assignment, rejection, staff notes.
// A rejection in the same patch overrides any status change it arrived with.
func (s *WorkflowService) StaffUpdate(ctx context.Context, actorID int64, kind models.RequestKind, id int64, input *dto.StaffUpdateRequest) (*models.Request, error) {
	repo, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	// Office-only endpoint. Checked before the request is even loaded so a
	// student cannot read another student's request through an empty patch.
	if err := auth.Require(actor.Role, auth.PermChangeStatus); err != nil {
		return nil, err
	}

	req, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	changed := false
	var afterUpdate []func()

	if input.Status != nil {
		target := models.Status(*input.Status)
		if !target.IsValid() {
			return nil, apperrors.NewValidationError(fmt.Sprintf("unknown status: %s", *input.Status))
		}
		if !req.Status.CanTransitionTo(target) {
			return nil, apperrors.NewInvalidStateError(
				fmt.Sprintf("cannot transition from %s to %s", req.Status, target))
		}
		oldStatus := req.Status
		req.Status = target
		note := fmt.Sprintf("Status changed to %s", target)
		if input.Note != nil && *input.Note != "" {
			note = *input.Note
		}
		// The timeline records every supplied status, even a restatement of
		// the current one; only the student notification is gated on an
		// actual change.
		req.AppendTimeline(target, note, actor.FullName, now)
		changed = true

		if target != oldStatus {
			student := *req
			afterUpdate = append(afterUpdate, func() {
				reqID, reqKind := requestRef(&student)
				subject, body := email.StatusUpdateBody(student.StudentName, student.Kind.Label(), string(target))
				s.notifications.NotifyWithEmail(ctx, &models.Notification{
					UserID:      student.StudentID,
					Title:       "Request Status Updated",
					Message:     fmt.Sprintf("Your %s request status changed to %s", strings.ToLower(student.Kind.Label()), target),
					Type:        models.NotificationStatusUpdate,
					RequestID:   reqID,
					RequestKind: reqKind,
				}, student.StudentEmail, student.StudentName, subject, body)
			})
		}
	}

	if input.AssignedStaffID != nil {
		if err := auth.Require(actor.Role, auth.PermAssignStaff); err != nil {
			return nil, err
		}
		staff, err := s.userRepo.GetByID(ctx, *input.AssignedStaffID)
		if err != nil || (staff.Role != models.RoleStaff && staff.Role != models.RoleAdmin) {
			return nil, apperrors.NewValidationError("assignedStaffId must reference an existing staff member")
		}
		req.AssignedStaffID = &staff.ID
		name := staff.FullName
		req.AssignedStaffName = &name
		req.UpdatedAt = now
		changed = true

		assigned := *req
		afterUpdate = append(afterUpdate, func() {
			reqID, reqKind := requestRef(&assigned)
			subject, body := email.AssignmentBody(staff.FullName, assigned.Kind.Label(), assigned.StudentName)
			s.notifications.NotifyWithEmail(ctx, &models.Notification{
				UserID:      staff.ID,
				Title:       "New Assignment",
				Message:     fmt.Sprintf("A %s request from %s has been assigned to you", strings.ToLower(assigned.Kind.Label()), assigned.StudentName),
				Type:        models.NotificationAssignment,
				RequestID:   reqID,
				RequestKind: reqKind,
			}, staff.Email, staff.FullName, subject, body)
		})
	}

	if input.RejectionReason != nil {
		if err := auth.Require(actor.Role, auth.PermRejectRequest); err != nil {
			return nil, err
		}
		reason := *input.RejectionReason
		if strings.TrimSpace(reason) == "" {
			return nil, apperrors.NewValidationError("rejectionReason cannot be empty")
		}
		req.Status = models.StatusRejected
		req.RejectionReason = &reason
		req.AppendTimeline(models.StatusRejected, fmt.Sprintf("Request rejected: %s", reason), actor.FullName, now)
		changed = true

		rejected := *req
		afterUpdate = append(afterUpdate, func() {
			reqID, reqKind := requestRef(&rejected)
			subject, body := email.RejectionBody(rejected.StudentName, rejected.Kind.Label(), reason)
			s.notifications.NotifyWithEmail(ctx, &models.Notification{
				UserID:      rejected.StudentID,
				Title:       "Request Status Updated",
				Message:     fmt.Sprintf("Your %s request was rejected: %s", strings.ToLower(rejected.Kind.Label()), reason),
				Type:        models.NotificationStatusUpdate,
				RequestID:   reqID,
				RequestKind: reqKind,
			}, rejected.StudentEmail, rejected.StudentName, subject, body)
		})
	}

	if input.StaffNotes != nil {
		if err := auth.Require(actor.Role, auth.PermSetStaffNotes); err != nil {
			return nil, err
		}
		notes := *input.StaffNotes
		req.StaffNotes = &notes
		req.UpdatedAt = now
		changed = true
	}

	if !changed {
		return req, nil
	}
	if err := repo.Update(ctx, req); err != nil {
		return nil, err
	}
	for _, notify := range afterUpdate {
		notify()
	}
	return req, nil
}

// AnnotateCoCurricular sets the co-curricular notes on a recommendation
// request. Only the recommendation collection carries this field.
func (s *WorkflowService) AnnotateCoCurricular(ctx context.Context, actorID, id int64, notes string) (*models.Request, error) {
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := auth.Require(actor.Role, auth.PermAnnotateRequest); err != nil {
		return nil, err
	}

	req, err := s.recommendations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	req.CoCurricularNotes = &notes
	req.UpdatedAt = time.Now().UTC()

	if err := s.recommendations.Update(ctx, req); err != nil {
		return nil, err
	}
	return req, nil
}

// Get returns a single request. Students may only read their own.
func (s *WorkflowService) Get(ctx context.Context, actorID int64, kind models.RequestKind, id int64) (*models.Request, error) {
	repo, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	req, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if actor.Role == models.RoleStudent && req.StudentID != actor.ID {
		return nil, apperrors.ErrPermissionDenied
	}
	return req, nil
}

// List returns the requests visible to the caller: students see their own,
// staff see those assigned to them, admins see everything.
func (s *WorkflowService) List(ctx context.Context, actorID int64, kind models.RequestKind) ([]*models.Request, error) {
	repo, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}

	switch actor.Role {
	case models.RoleStudent:
		return repo.ListByStudent(ctx, actor.ID)
	case models.RoleStaff:
		return repo.ListByAssignedStaff(ctx, actor.ID)
	case models.RoleAdmin:
		return repo.ListAll(ctx)
	}
	return nil, apperrors.ErrPermissionDenied
}

// ListAll returns every request of a kind regardless of assignment. The
// office uses this as its shared queue; students are denied.
func (s *WorkflowService) ListAll(ctx context.Context, actorID int64, kind models.RequestKind) ([]*models.Request, error) {
	repo, err := s.repoFor(kind)
	if err != nil {
		return nil, err
	}
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if err := auth.Require(actor.Role, auth.PermViewAllRequests); err != nil {
		return nil, err
	}
	return repo.ListAll(ctx)
}

// UploadDocument stores a file against a request and records it on the
// timeline. The student is notified that a document is available.
func (s *WorkflowService) UploadDocument(ctx context.Context, actorID int64, kind models.RequestKind, id int64, fileHeader *multipart.FileHeader) (*models.Request, *models.DocumentEntry, error) {
	repo, err := s.repoFor(kind)
	if err != nil {
		return nil, nil, err
	}
	actor, err := s.actor(ctx, actorID)
	if err != nil {
		return nil, nil, err
	}
	if err := auth.Require(actor.Role, auth.PermUploadDocument); err != nil {
		return nil, nil, err
	}
	if fileHeader == nil {
		return nil, nil, apperrors.NewValidationError("no file provided")
	}

	req, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	storedPath, err := s.storage.SaveFileWithPath(fileHeader, fmt.Sprintf("%ss/%d", kind, id))
	if err != nil {
		return nil, nil, fmt.Errorf("error storing document: %w", err)
	}

	now := time.Now().UTC()
	doc := models.DocumentEntry{
		ID:          uuid.New().String(),
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Path:        storedPath,
		UploadedBy:  actor.FullName,
		UploadedAt:  now,
	}
	req.Documents = append(req.Documents, doc)
	req.AppendTimeline(req.Status, fmt.Sprintf("Document uploaded: %s", doc.Filename), actor.FullName, now)

	if err := repo.Update(ctx, req); err != nil {
		return nil, nil, err
	}

	reqID, reqKind := requestRef(req)
	subject, body := email.DocumentBody(req.StudentName, req.Kind.Label(), doc.Filename)
	s.notifications.NotifyWithEmail(ctx, &models.Notification{
		UserID:      req.StudentID,
		Title:       "Document Uploaded",
		Message:     fmt.Sprintf("A document was uploaded to your %s request: %s", strings.ToLower(req.Kind.Label()), doc.Filename),
		Type:        models.NotificationDocument,
		RequestID:   reqID,
		RequestKind: reqKind,
	}, req.StudentEmail, req.StudentName, subject, body)

	return req, &doc, nil
}

// GetDocument returns a stored document's descriptor and content. Students
// may only fetch documents from their own requests.
func (s *WorkflowService) GetDocument(ctx context.Context, actorID int64, kind models.RequestKind, id int64, docID string) (*models.DocumentEntry, []byte, error) {
	req, err := s.Get(ctx, actorID, kind, id)
	if err != nil {
		return nil, nil, err
	}

	doc := req.DocumentByID(docID)
	if doc == nil {
		return nil, nil, apperrors.ErrDocumentNotFound
	}

	content, err := s.storage.ReadFile(doc.Path)
	if err != nil {
		s.logger.Error().Err(err).Str("path", doc.Path).Msg("Failed to read stored document")
		return nil, nil, apperrors.ErrDocumentNotFound
	}
	return doc, content, nil
}
