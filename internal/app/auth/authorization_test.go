package auth

import (
	"errors"
	"testing"

	"github.com/campusworks/transcript-tracker/internal/app/models"
	"github.com/campusworks/transcript-tracker/internal/pkg/apperrors"
)

func TestRolePermissions(t *testing.T) {
	cases := []struct {
		role models.RoleType
		perm Permission
		want bool
	}{
		{models.RoleStudent, PermSubmitRequest, true},
		{models.RoleStudent, PermEditOwnRequest, true},
		{models.RoleStudent, PermDownloadDocument, true},
		{models.RoleStudent, PermChangeStatus, false},
		{models.RoleStudent, PermUploadDocument, false},
		{models.RoleStudent, PermViewAllRequests, false},
		{models.RoleStudent, PermManageUsers, false},

		{models.RoleStaff, PermChangeStatus, true},
		{models.RoleStaff, PermAssignStaff, true},
		{models.RoleStaff, PermRejectRequest, true},
		{models.RoleStaff, PermAnnotateRequest, true},
		{models.RoleStaff, PermUploadDocument, true},
		{models.RoleStaff, PermSubmitRequest, false},
		{models.RoleStaff, PermManageUsers, false},
		{models.RoleStaff, PermViewAnalytics, false},

		{models.RoleAdmin, PermManageUsers, true},
		{models.RoleAdmin, PermViewAnalytics, true},
		{models.RoleAdmin, PermChangeStatus, true},
		{models.RoleAdmin, PermSubmitRequest, false},

		// Unknown roles hold nothing
		{models.RoleType("intern"), PermViewOwnRequests, false},
	}

	for _, tc := range cases {
		if got := Can(tc.role, tc.perm); got != tc.want {
			t.Errorf("Can(%s, %s) = %v, want %v", tc.role, tc.perm, got, tc.want)
		}
	}
}

func TestRequire(t *testing.T) {
	if err := Require(models.RoleAdmin, PermManageUsers); err != nil {
		t.Errorf("Require granted permission: %v", err)
	}
	if err := Require(models.RoleStudent, PermManageUsers); !errors.Is(err, apperrors.ErrPermissionDenied) {
		t.Errorf("Require denied permission: got %v, want permission denied", err)
	}
}
