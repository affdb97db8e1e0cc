package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"sort"
	"time"

	"github.com/rs/zerolog"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/pkg/apperrors"
)

// In-memory repository fakes. They hand out copies so a service mutation
// that never reaches Update cannot leak into the stored state.

type fakeUserRepo struct {
	users     map[int64]*models.User
	nextID    int64
	passwords map[int64]string
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		users:     make(map[int64]*models.User),
		passwords: make(map[int64]string),
	}
}

func (r *fakeUserRepo) add(fullName, emailAddr string, role models.RoleType) *models.User {
	r.nextID++
	u := &models.User{ID: r.nextID, Email: emailAddr, FullName: fullName, Role: role}
	r.users[u.ID] = u
	return u
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	r.nextID++
	user.ID = r.nextID
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, emailAddr string) (*models.User, error) {
	for _, u := range r.users {
		if u.Email == emailAddr {
			cp := *u
			return &cp, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *fakeUserRepo) EmailExists(ctx context.Context, emailAddr string) (bool, error) {
	_, err := r.GetByEmail(ctx, emailAddr)
	return err == nil, nil
}

func (r *fakeUserRepo) ListAll(ctx context.Context) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role models.RoleType) ([]*models.User, error) {
	var out []*models.User
	for _, u := range r.users {
		if u.Role == role {
			cp := *u
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	if _, ok := r.users[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	r.passwords[userID] = passwordHash
	r.users[userID].PasswordHash = passwordHash
	return nil
}

func (r *fakeUserRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type fakeRequestRepo struct {
	kind      models.RequestKind
	reqs      map[int64]*models.Request
	nextID    int64
	updateErr error
	updates   int
}

func newFakeRequestRepo(kind models.RequestKind) *fakeRequestRepo {
	return &fakeRequestRepo{kind: kind, reqs: make(map[int64]*models.Request)}
}

func (r *fakeRequestRepo) Kind() models.RequestKind { return r.kind }

func (r *fakeRequestRepo) Create(ctx context.Context, req *models.Request) error {
	r.nextID++
	req.ID = r.nextID
	req.Kind = r.kind
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now().UTC()
	}
	stored := *req
	r.reqs[req.ID] = &stored
	return nil
}

func (r *fakeRequestRepo) GetByID(ctx context.Context, id int64) (*models.Request, error) {
	req, ok := r.reqs[id]
	if !ok {
		return nil, apperrors.ErrRequestNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *fakeRequestRepo) Update(ctx context.Context, req *models.Request) error {
	if r.updateErr != nil {
		return r.updateErr
	}
	if _, ok := r.reqs[req.ID]; !ok {
		return apperrors.ErrRequestNotFound
	}
	r.updates++
	stored := *req
	r.reqs[req.ID] = &stored
	return nil
}

func (r *fakeRequestRepo) ListByStudent(ctx context.Context, studentID int64) ([]*models.Request, error) {
	return r.filter(func(req *models.Request) bool { return req.StudentID == studentID }), nil
}

func (r *fakeRequestRepo) ListByAssignedStaff(ctx context.Context, staffID int64) ([]*models.Request, error) {
	return r.filter(func(req *models.Request) bool {
		return req.AssignedStaffID != nil && *req.AssignedStaffID == staffID
	}), nil
}

func (r *fakeRequestRepo) ListAll(ctx context.Context) ([]*models.Request, error) {
	return r.filter(func(*models.Request) bool { return true }), nil
}

func (r *fakeRequestRepo) ListOverdueCandidates(ctx context.Context, day string) ([]*models.Request, error) {
	return r.filter(func(req *models.Request) bool {
		if req.Status.IsTerminal() {
			return false
		}
		if req.NeededByDate >= day {
			return false
		}
		return req.OverdueNotifiedDay == nil || *req.OverdueNotifiedDay != day
	}), nil
}

func (r *fakeRequestRepo) filter(keep func(*models.Request) bool) []*models.Request {
	var out []*models.Request
	for _, req := range r.reqs {
		if keep(req) {
			cp := *req
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeNotificationRepo struct {
	notifications []*models.Notification
	failCreate    bool
}

func (r *fakeNotificationRepo) Create(ctx context.Context, n *models.Notification) error {
	if r.failCreate {
		return errors.New("notification store unavailable")
	}
	n.ID = int64(len(r.notifications) + 1)
	cp := *n
	r.notifications = append(r.notifications, &cp)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(ctx context.Context, userID int64) ([]*models.Notification, error) {
	var out []*models.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			cp := *n
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeNotificationRepo) UnreadCount(ctx context.Context, userID int64) (int64, error) {
	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *fakeNotificationRepo) MarkRead(ctx context.Context, id, userID int64) error {
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return apperrors.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(ctx context.Context, userID int64) error {
	for _, n := range r.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}

func (r *fakeNotificationRepo) titlesFor(userID int64) []string {
	var out []string
	for _, n := range r.notifications {
		if n.UserID == userID {
			out = append(out, n.Title)
		}
	}
	return out
}

type fakeResetRepo struct {
	resets map[string]*models.PasswordReset
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{resets: make(map[string]*models.PasswordReset)}
}

func (r *fakeResetRepo) Create(ctx context.Context, reset *models.PasswordReset) error {
	cp := *reset
	r.resets[reset.Token] = &cp
	return nil
}

func (r *fakeResetRepo) GetByToken(ctx context.Context, token string) (*models.PasswordReset, error) {
	reset, ok := r.resets[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	cp := *reset
	return &cp, nil
}

func (r *fakeResetRepo) Delete(ctx context.Context, token string) error {
	delete(r.resets, token)
	return nil
}

type sentMail struct {
	To      string
	Subject string
}

type fakeMailer struct {
	sent []sentMail
	fail bool
}

func (m *fakeMailer) Send(toEmail, toName, subject, htmlBody string) error {
	if m.fail {
		return errors.New("smtp unreachable")
	}
	m.sent = append(m.sent, sentMail{To: toEmail, Subject: subject})
	return nil
}

type fakeStorage struct {
	files  map[string][]byte
	nextID int
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{files: make(map[string][]byte)}
}

func (s *fakeStorage) SaveFile(fileHeader *multipart.FileHeader) (string, error) {
	return s.SaveFileWithPath(fileHeader, "misc")
}

func (s *fakeStorage) SaveFileWithPath(fileHeader *multipart.FileHeader, path string) (string, error) {
	s.nextID++
	stored := fmt.Sprintf("%s/%d-%s", path, s.nextID, fileHeader.Filename)
	s.files[stored] = []byte("stored content of " + fileHeader.Filename)
	return stored, nil
}

func (s *fakeStorage) ReadFile(filePath string) ([]byte, error) {
	content, ok := s.files[filePath]
	if !ok {
		return nil, errors.New("file not found")
	}
	return content, nil
}

func (s *fakeStorage) DeleteFile(filePath string) error {
	delete(s.files, filePath)
	return nil
}

func (s *fakeStorage) GetFullPath(fileURL string) string { return fileURL }

type workflowFixture struct {
	users           *fakeUserRepo
	transcripts     *fakeRequestRepo
	recommendations *fakeRequestRepo
	notifications   *fakeNotificationRepo
	mailer          *fakeMailer
	storage         *fakeStorage
	service         *WorkflowService
}

func newWorkflowFixture() *workflowFixture {
	f := &workflowFixture{
		users:           newFakeUserRepo(),
		transcripts:     newFakeRequestRepo(models.KindTranscript),
		recommendations: newFakeRequestRepo(models.KindRecommendation),
		notifications:   &fakeNotificationRepo{},
		mailer:          &fakeMailer{},
		storage:         newFakeStorage(),
	}
	notifier := NewNotificationService(f.notifications, f.users, f.mailer, zerolog.Nop())
	f.service = NewWorkflowService(f.users, f.transcripts, f.recommendations, notifier, f.storage, zerolog.Nop())
	return f
}
