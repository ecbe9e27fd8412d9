package auth

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrBranchForbidden marks a staff request for a branch other than its own.
var ErrBranchForbidden = errors.New("branch access forbidden")

// BranchScope resolves the effective branch filter for a scoped request.
// requested is the raw branch_id query value (may be empty).
//
//   - admin / super-admin: the requested branch, or nil (no filter) when empty
//   - staff: always their own branch; a mismatching request is rejected
func BranchScope(user *CurrentUser, requested string) (*uuid.UUID, error) {
	var requestedID *uuid.UUID
	if requested != "" {
		id, err := uuid.Parse(requested)
		if err != nil {
			return nil, fmt.Errorf("invalid branch_id: %w", err)
		}
		requestedID = &id
	}

	if user == nil {
		return nil, ErrBranchForbidden
	}

	if user.Role.IsAdmin() {
		return requestedID, nil
	}

	// Staff are pinned to their own branch.
	if requestedID != nil && *requestedID != user.BranchID {
		return nil, ErrBranchForbidden
	}
	own := user.BranchID
	return &own, nil
}

// ReportingScope resolves the branch filter for reporting queries. Only
// super-admins may aggregate across branches; admins and staff are pinned to
// their own branch and a mismatching request is rejected.
func ReportingScope(user *CurrentUser, requested string) (*uuid.UUID, error) {
	if user == nil {
		return nil, ErrBranchForbidden
	}
	if user.Role.IsSuperAdmin() {
		return BranchScope(user, requested)
	}

	if requested != "" {
		id, err := uuid.Parse(requested)
		if err != nil {
			return nil, fmt.Errorf("invalid branch_id: %w", err)
		}
		if id != user.BranchID {
			return nil, ErrBranchForbidden
		}
	}
	own := user.BranchID
	return &own, nil
}
