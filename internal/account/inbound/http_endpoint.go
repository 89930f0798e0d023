package inbound

import (
	"encoding/json"
	"strconv"

	"github.com/demirti/cverse-lms/internal/account/entity"
	"github.com/demirti/cverse-lms/internal/account/usecase"
	"github.com/demirti/cverse-lms/internal/pkg/goerror"
	"github.com/demirti/cverse-lms/internal/pkg/router"
)

type HTTPEndpoint struct {
	uc uc
}

// Me returns the authenticated user's profile.
// @Summary Get my profile
// @Description Returns the authenticated user's account.
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Success 200 {object} router.successResponse{data=UserResponse} "User profile"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/me [get]
func (h *HTTPEndpoint) Me(r *router.Request) (any, error) {
	user, err := h.uc.Me(r.Context())
	if err != nil {
		return nil, err
	}

	return userResponse(*user), nil
}

// ListUsers returns users for the admin screen.
// @Summary List users
// @Description Returns users with optional search and role filters. Admin only.
// @Tags Account
// @Security BearerAuth
// @Produce json
// @Param search query string false "Search by name or email"
// @Param role query string false "Filter by role"
// @Param limit query int false "Pagination limit"
// @Param offset query int false "Pagination offset"
// @Success 200 {object} router.successResponse{data=UsersResponse} "User list"
// @Failure 400 {object} router.errorResponse "Invalid query parameters"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/users [get]
func (h *HTTPEndpoint) ListUsers(r *router.Request) (any, error) {
	query := r.URL.Query()

	limit, err := parseInt32(query.Get("limit"))
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}
	offset, err := parseInt32(query.Get("offset"))
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	out, err := h.uc.ListUsers(r.Context(), usecase.ListUsersInput{
		Search: query.Get("search"),
		Role:   query.Get("role"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return nil, err
	}

	users := make([]UserResponse, 0, len(out.Users))
	for _, u := range out.Users {
		users = append(users, userResponse(u))
	}

	return UsersResponse{Total: out.Total, Users: users}, nil
}

// UpdateUserRole changes a user's role.
// @Summary Update user role
// @Description Changes a user's role and authorization grouping. Admin only.
// @Tags Account
// @Security BearerAuth
// @Accept json
// @Param id path int true "User ID"
// @Param request body UpdateUserRoleRequest true "New role"
// @Success 204 "No Content"
// @Failure 400 {object} router.errorResponse "Invalid request"
// @Failure 401 {object} router.errorResponse "Unauthorized"
// @Failure 403 {object} router.errorResponse "Forbidden"
// @Failure 404 {object} router.errorResponse "User not found"
// @Failure 500 {object} router.errorResponse "Internal server error"
// @Router /api/v1/admin/users/{id}/role [put]
func (h *HTTPEndpoint) UpdateUserRole(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	var req UpdateUserRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return nil, goerror.NewInvalidFormat()
	}

	return nil, h.uc.UpdateUserRole(r.Context(), usecase.UpdateUserRoleInput{
		UserID: id,
		Role:   req.Role,
	})
}

func userResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      u.Role.String(),
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
	}
}

func parseInt32(raw string) (int32, error) {
	if raw == "" {
		return 0, nil
	}

	v, err := strconv.ParseInt(raw, 10, 32)
	if err != nil {
		return 0, err
	}

	return int32(v), nil
}
