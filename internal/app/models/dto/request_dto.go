package dto

import (
	"github.com/campusworks/transcript-tracker/internal/app/models"
)

// CreateRequestRequest carries the student-supplied field bag for a new
// transcript or recommendation request
type CreateRequestRequest struct {
	FirstName        string             `json:"firstName" binding:"required"`
	MiddleName       string             `json:"middleName"`
	LastName         string             `json:"lastName" binding:"required"`
	SchoolID         string             `json:"schoolId" binding:"required"`
	EnrollmentStatus string             `json:"enrollmentStatus" binding:"required,oneof=enrolled graduate withdrawn"`
	AcademicYears    []models.YearRange `json:"academicYears" binding:"required,min=1,dive"`
	SchoolEmail      string             `json:"schoolEmail" binding:"required,email"`
	PersonalEmail    string             `json:"personalEmail" binding:"required,email"`
	PhoneNumber      string             `json:"phoneNumber" binding:"required"`
	Reason           string             `json:"reason" binding:"required"`
	NeededByDate     string             `json:"neededByDate" binding:"required"`
	CollectionMethod string             `json:"collectionMethod" binding:"required,oneof=pickup emailed delivery"`

	InstitutionName    string `json:"institutionName"`
	InstitutionAddress string `json:"institutionAddress"`
	InstitutionPhone   string `json:"institutionPhone"`
	InstitutionEmail   string `json:"institutionEmail"`
}

// StudentEditRequest is the patch a student may apply while the request is
// still Pending. All fields are optional; absent fields are left unchanged.
type StudentEditRequest struct {
	FirstName        *string             `json:"firstName,omitempty"`
	MiddleName       *string             `json:"middleName,omitempty"`
	LastName         *string             `json:"lastName,omitempty"`
	SchoolID         *string             `json:"schoolId,omitempty"`
	EnrollmentStatus *string             `json:"enrollmentStatus,omitempty" binding:"omitempty,oneof=enrolled graduate withdrawn"`
	AcademicYears    *[]models.YearRange `json:"academicYears,omitempty" binding:"omitempty,min=1,dive"`
	SchoolEmail      *string             `json:"schoolEmail,omitempty" binding:"omitempty,email"`
	PersonalEmail    *string             `json:"personalEmail,omitempty" binding:"omitempty,email"`
	PhoneNumber      *string             `json:"phoneNumber,omitempty"`
	Reason           *string             `json:"reason,omitempty"`
	NeededByDate     *string             `json:"neededByDate,omitempty"`
	CollectionMethod *string             `json:"collectionMethod,omitempty" binding:"omitempty,oneof=pickup emailed delivery"`

	InstitutionName    *string `json:"institutionName,omitempty"`
	InstitutionAddress *string `json:"institutionAddress,omitempty"`
	InstitutionPhone   *string `json:"institutionPhone,omitempty"`
	InstitutionEmail   *string `json:"institutionEmail,omitempty"`
}

// StaffUpdateRequest is the staff/admin PATCH body. Fields are applied in a
// fixed order: status, assignment, rejection, notes.
type StaffUpdateRequest struct {
	Status          *string `json:"status,omitempty"`
	AssignedStaffID *int64  `json:"assignedStaffId,omitempty"`
	RejectionReason *string `json:"rejectionReason,omitempty"`
	StaffNotes      *string `json:"staffNotes,omitempty"`
	Note            *string `json:"note,omitempty"` // optional timeline note for the status change
}

// CoCurricularRequest sets the co-curricular annotation on a recommendation
// request
type CoCurricularRequest struct {
	Notes string `json:"notes" binding:"required"`
}

// DocumentUploadResponse acknowledges a stored document
type DocumentUploadResponse struct {
	Message  string               `json:"message"`
	Document models.DocumentEntry `json:"document"`
}

// DocumentContentResponse returns a stored document as base64 content
type DocumentContentResponse struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Content     string `json:"content"`
}
