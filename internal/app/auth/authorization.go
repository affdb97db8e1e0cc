package auth

import (
	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/pkg/apperrors"
)

// Permission identifies an action a caller may attempt on a request
type Permission string

const (
	PermSubmitRequest     Permission = "request:submit"
	PermEditOwnRequest    Permission = "request:edit_own"
	PermViewOwnRequests   Permission = "request:view_own"
	PermViewAllRequests   Permission = "request:view_all"
	PermChangeStatus      Permission = "request:change_status"
	PermAssignStaff       Permission = "request:assign_staff"
	PermRejectRequest     Permission = "request:reject"
	PermSetStaffNotes     Permission = "request:set_staff_notes"
	PermAnnotateRequest   Permission = "request:annotate"
	PermUploadDocument    Permission = "request:upload_document"
	PermDownloadDocument  Permission = "request:download_document"
	PermManageUsers       Permission = "admin:manage_users"
	PermViewAnalytics     Permission = "admin:view_analytics"
	PermViewStaffRoster   Permission = "staff:view_roster"
)

// permissions is the role-to-permission matrix. A role not listed for a
// permission is denied it.
var permissions = map[models.RoleType]map[Permission]bool{
	models.RoleStudent: {
		PermSubmitRequest:    true,
		PermEditOwnRequest:   true,
		PermViewOwnRequests:  true,
		PermDownloadDocument: true,
	},
	models.RoleStaff: {
		PermViewOwnRequests:  true,
		PermViewAllRequests:  true,
		PermChangeStatus:     true,
		PermAssignStaff:      true,
		PermRejectRequest:    true,
		PermSetStaffNotes:    true,
		PermAnnotateRequest:  true,
		PermUploadDocument:   true,
		PermDownloadDocument: true,
		PermViewStaffRoster:  true,
	},
	models.RoleAdmin: {
		PermViewOwnRequests:  true,
		PermViewAllRequests:  true,
		PermChangeStatus:     true,
		PermAssignStaff:      true,
		PermRejectRequest:    true,
		PermSetStaffNotes:    true,
		PermAnnotateRequest:  true,
		PermUploadDocument:   true,
		PermDownloadDocument: true,
		PermViewStaffRoster:  true,
		PermManageUsers:      true,
		PermViewAnalytics:    true,
	},
}

// Can reports whether the role holds the permission
func Can(role models.RoleType, perm Permission) bool {
	return permissions[role][perm]
}

// Require returns ErrPermissionDenied when the role lacks the permission
func Require(role models.RoleType, perm Permission) error {
	if !Can(role, perm) {
		return apperrors.ErrPermissionDenied
	}
	return nil
}
