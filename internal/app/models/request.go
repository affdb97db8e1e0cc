package models

import (
	"time"
)

// YearRange is the canonical representation of an academic year span,
// e.g. {2019, 2024} for a student enrolled from 2019 to 2024.
type YearRange struct {
	FromYear int `json:"fromYear" example:"2019"`
	ToYear   int `json:"toYear" example:"2024"`
}

// TimelineEntry is a single append-only audit record on a request. The last
// entry's Status always equals the request's current Status.
type TimelineEntry struct {
	Status    Status    `json:"status" example:"Pending"`
	Timestamp time.Time `json:"timestamp" example:"2024-01-01T10:00:00Z"`
	Note      string    `json:"note" example:"Request submitted"`
	UpdatedBy string    `json:"updatedBy" example:"John Doe"`
}

// DocumentEntry describes a file uploaded against a request. The bytes live on
// disk under the storage path; only the descriptor is stored on the request.
type DocumentEntry struct {
	ID          string    `json:"id" example:"7f6c1fd4-2f7b-4f6e-9c95-5a1f1fa8f001"`
	Filename    string    `json:"filename" example:"transcript.pdf"`
	ContentType string    `json:"contentType" example:"application/pdf"`
	Path        string    `json:"path" example:"uploads/7f6c1fd4.pdf"`
	UploadedBy  string    `json:"uploadedBy" example:"Jane Smith"`
	UploadedAt  time.Time `json:"uploadedAt" example:"2024-01-02T09:00:00Z"`
}

// Request defines the shared shape of transcript and recommendation-letter
// requests. The two kinds live in independent tables with identical columns;
// Kind records which table a loaded row came from.
type Request struct {
	ID           int64       `json:"id" db:"id" example:"1"`
	Kind         RequestKind `json:"kind" example:"transcript"`
	StudentID    int64       `json:"studentId" db:"student_id" example:"7"`
	StudentName  string      `json:"studentName" db:"student_name" example:"John Doe"`
	StudentEmail string      `json:"studentEmail" db:"student_email" example:"student@school.edu"`

	FirstName        string      `json:"firstName" db:"first_name"`
	MiddleName       string      `json:"middleName" db:"middle_name"`
	LastName         string      `json:"lastName" db:"last_name"`
	SchoolID         string      `json:"schoolId" db:"school_id" example:"20190042"`
	EnrollmentStatus string      `json:"enrollmentStatus" db:"enrollment_status" example:"graduate"` // enrolled, graduate, withdrawn
	AcademicYears    []YearRange `json:"academicYears" db:"academic_years"`
	SchoolEmail      string      `json:"schoolEmail" db:"school_email"`
	PersonalEmail    string      `json:"personalEmail" db:"personal_email"`
	PhoneNumber      string      `json:"phoneNumber" db:"phone_number"`
	Reason           string      `json:"reason" db:"reason"`
	NeededByDate     string      `json:"neededByDate" db:"needed_by_date" example:"2024-06-30"`
	CollectionMethod string      `json:"collectionMethod" db:"collection_method" example:"pickup"` // pickup, emailed, delivery

	InstitutionName    string `json:"institutionName" db:"institution_name"`
	InstitutionAddress string `json:"institutionAddress" db:"institution_address"`
	InstitutionPhone   string `json:"institutionPhone" db:"institution_phone"`
	InstitutionEmail   string `json:"institutionEmail" db:"institution_email"`

	Status             Status  `json:"status" db:"status" example:"Pending"`
	AssignedStaffID    *int64  `json:"assignedStaffId,omitempty" db:"assigned_staff_id"`
	AssignedStaffName  *string `json:"assignedStaffName,omitempty" db:"assigned_staff_name"`
	RejectionReason    *string `json:"rejectionReason,omitempty" db:"rejection_reason"`
	StaffNotes         *string `json:"staffNotes,omitempty" db:"staff_notes"`
	CoCurricularNotes  *string `json:"coCurricularNotes,omitempty" db:"co_curricular_notes"` // recommendation requests only
	OverdueNotifiedDay *string `json:"-" db:"overdue_notified_date"`                         // calendar day marker, "2006-01-02"

	Documents []DocumentEntry `json:"documents" db:"documents"`
	Timeline  []TimelineEntry `json:"timeline" db:"timeline"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// AppendTimeline appends an audit entry and keeps UpdatedAt in step
func (r *Request) AppendTimeline(status Status, note, updatedBy string, at time.Time) {
	r.Timeline = append(r.Timeline, TimelineEntry{
		Status:    status,
		Timestamp: at,
		Note:      note,
		UpdatedBy: updatedBy,
	})
	r.UpdatedAt = at
}

// CurrentTimelineStatus returns the status of the last timeline entry, or
// empty when the timeline is empty
func (r *Request) CurrentTimelineStatus() Status {
	if len(r.Timeline) == 0 {
		return ""
	}
	return r.Timeline[len(r.Timeline)-1].Status
}

// DocumentByID returns the document descriptor with the given id, if present
func (r *Request) DocumentByID(id string) *DocumentEntry {
	for i := range r.Documents {
		if r.Documents[i].ID == id {
			return &r.Documents[i]
		}
	}
	return nil
}
