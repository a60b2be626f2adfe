package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/models"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/repository"
	"github.com/SinghAdii/Ekta-Janch-kendra-sub001/utils"

	"github.com/rs/zerolog"
)

// AdminUserService back-office accounts. Usernames and emails are unique
// case-insensitively; capabilities are never stored, only derived.
type AdminUserService struct {
	users repository.Repository[models.AdminUser]
	tx    repository.TxManager
	now   Clock
	log   zerolog.Logger
}

func NewAdminUserService(s *repository.Stores) *AdminUserService {
	return &AdminUserService{users: s.AdminUsers, tx: s.Tx, now: time.Now, log: utils.Component("admin-users")}
}

func (s *AdminUserService) List(ctx context.Context, f models.AdminUserFilters) ([]models.AdminUser, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admin users: %w", err)
	}
	out := Filter(all,
		func(u models.AdminUser) bool { return matchesText(f.Search, u.Username, u.Email, u.FullName) },
		func(u models.AdminUser) bool { return f.Status == "" || u.Status == f.Status },
		func(u models.AdminUser) bool { return f.Role == "" || hasRole(u.Roles, f.Role) },
	)
	for i := range out {
		withCapabilities(&out[i])
	}
	return out, nil
}

func (s *AdminUserService) Get(ctx context.Context, id string) (*models.AdminUser, error) {
	u, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, lookupError(err, "admin user")
	}
	withCapabilities(u)
	return u, nil
}

func (s *AdminUserService) Create(ctx context.Context, req models.CreateAdminUserRequest) (*models.AdminUser, error) {
	fields := merge(validateStruct(req), checkRoles(req.Roles))
	if req.Status != "" && !req.Status.Valid() {
		fields = merge(fields, utils.FieldErrors{"status": "is not a valid status"})
	}
	if len(fields) > 0 {
		return nil, utils.CreateValidationError(fields)
	}

	username := strings.TrimSpace(req.Username)
	email := strings.ToLower(strings.TrimSpace(req.Email))

	status := req.Status
	if status == "" {
		status = models.AdminUserActive
	}
	now := s.now()
	u := models.AdminUser{
		ID:           newID("admin"),
		Username:     username,
		Email:        email,
		FullName:     strings.TrimSpace(req.FullName),
		Phone:        req.Phone,
		PasswordHash: utils.HashPassword(req.Password),
		Roles:        dedupeRoles(req.Roles),
		Status:       status,
		BranchID:     req.BranchID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		if err := s.checkUnique(ctx, username, email, ""); err != nil {
			return err
		}
		if err := s.users.Create(ctx, u); err != nil {
			return fmt.Errorf("create admin user: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", u.Username).Strs("roles", u.RoleNames()).Msg("admin user created")
	withCapabilities(&u)
	return &u, nil
}

// Update edits an account. actorID is the caller; nobody may change their
// own status.
func (s *AdminUserService) Update(ctx context.Context, id, actorID string, req models.UpdateAdminUserRequest) (*models.AdminUser, error) {
	fields := validateStruct(req)
	if req.Roles != nil {
		fields = merge(fields, checkRoles(req.Roles))
	}
	if req.Status != nil && !req.Status.Valid() {
		fields = merge(fields, utils.FieldErrors{"status": "is not a valid status"})
	}
	if len(fields) > 0 {
		return nil, utils.CreateValidationError(fields)
	}

	var out *models.AdminUser
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		u, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if req.Status != nil && *req.Status != u.Status && id == actorID {
			return utils.CreateBadRequestError("cannot change your own status")
		}
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if err := s.checkUnique(ctx, "", email, id); err != nil {
				return err
			}
			u.Email = email
		}
		if req.FullName != nil {
			u.FullName = strings.TrimSpace(*req.FullName)
		}
		if req.Phone != nil {
			u.Phone = *req.Phone
		}
		if req.Password != nil {
			u.PasswordHash = utils.HashPassword(*req.Password)
		}
		if req.Roles != nil {
			u.Roles = dedupeRoles(req.Roles)
		}
		if req.Status != nil {
			u.Status = *req.Status
		}
		if req.BranchID != nil {
			u.BranchID = *req.BranchID
		}
		if err := s.keepLastSuperAdmin(ctx, id, u.Roles, u.Status); err != nil {
			return err
		}

		u.UpdatedAt = s.now()
		if err := s.users.Update(ctx, *u); err != nil {
			return lookupError(err, "admin user")
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	withCapabilities(out)
	return out, nil
}

// UpdateStatus activates, deactivates or suspends an account. An admin
// cannot change their own status.
func (s *AdminUserService) UpdateStatus(ctx context.Context, id string, status models.AdminUserStatus, actorID string) (*models.AdminUser, error) {
	if !status.Valid() {
		return nil, utils.CreateFieldError("status", "is not a valid status")
	}
	if id == actorID {
		return nil, utils.CreateBadRequestError("cannot change your own status")
	}

	var out *models.AdminUser
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		u, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.keepLastSuperAdmin(ctx, id, u.Roles, status); err != nil {
			return err
		}
		u.Status = status
		u.UpdatedAt = s.now()
		if err := s.users.Update(ctx, *u); err != nil {
			return lookupError(err, "admin user")
		}
		out = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("username", out.Username).Str("status", string(status)).Msg("admin status changed")
	return out, nil
}

// Delete removes an account. The last active Super Admin and the caller's
// own account are protected.
func (s *AdminUserService) Delete(ctx context.Context, id, actorID string) error {
	if id == actorID {
		return utils.CreateBadRequestError("cannot delete your own account")
	}

	var username string
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		u, err := s.Get(ctx, id)
		if err != nil {
			return err
		}
		if err := s.keepLastSuperAdmin(ctx, id, nil, ""); err != nil {
			return err
		}
		if err := s.users.Delete(ctx, id); err != nil {
			return lookupError(err, "admin user")
		}
		username = u.Username
		return nil
	})
	if err != nil {
		return err
	}
	s.log.Info().Str("username", username).Msg("admin user deleted")
	return nil
}

// keepLastSuperAdmin refuses a change that leaves no active Super Admin. roles
// and status are the account's values after the change; nil/empty mean removal.
func (s *AdminUserService) keepLastSuperAdmin(ctx context.Context, id string, roles []models.AdminRole, status models.AdminUserStatus) error {
	if status == models.AdminUserActive && hasRole(roles, models.RoleSuperAdmin) {
		return nil
	}
	all, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("list admin users: %w", err)
	}
	others := Filter(all, func(o models.AdminUser) bool {
		return o.ID != id && o.Status == models.AdminUserActive && hasRole(o.Roles, models.RoleSuperAdmin)
	})
	if len(others) > 0 {
		return nil
	}
	for _, o := range all {
		if o.ID == id && o.Status == models.AdminUserActive && hasRole(o.Roles, models.RoleSuperAdmin) {
			return utils.CreateDependencyError("at least one active super admin must remain")
		}
	}
	return nil
}

func (s *AdminUserService) Stats(ctx context.Context) (*models.AdminUserStats, error) {
	all, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list admin users: %w", err)
	}
	stats := &models.AdminUserStats{TotalUsers: len(all), ByRole: make(map[models.AdminRole]int)}
	for _, r := range models.AllRoles {
		stats.ByRole[r] = 0
	}
	for _, u := range all {
		switch u.Status {
		case models.AdminUserActive:
			stats.ActiveUsers++
		case models.AdminUserInactive:
			stats.InactiveUsers++
		case models.AdminUserSuspended:
			stats.SuspendedUsers++
		}
		for _, r := range u.Roles {
			stats.ByRole[r]++
		}
	}
	return stats, nil
}

func (s *AdminUserService) checkUnique(ctx context.Context, username, email, selfID string) error {
	all, err := s.users.List(ctx)
	if err != nil {
		return fmt.Errorf("list admin users: %w", err)
	}
	for _, u := range all {
		if u.ID == selfID {
			continue
		}
		if username != "" && strings.EqualFold(u.Username, username) {
			return utils.CreateDuplicateError("username", username)
		}
		if email != "" && strings.EqualFold(u.Email, email) {
			return utils.CreateDuplicateError("email", email)
		}
	}
	return nil
}

func withCapabilities(u *models.AdminUser) {
	u.Capabilities = EffectiveCapabilities(u.Roles).List()
}

func checkRoles(roles []models.AdminRole) utils.FieldErrors {
	for _, r := range roles {
		if !r.Valid() {
			return utils.FieldErrors{"roles": fmt.Sprintf("unknown role %q", r)}
		}
	}
	return nil
}

func hasRole(roles []models.AdminRole, want models.AdminRole) bool {
	for _, r := range roles {
		if r == want {
			return true
		}
	}
	return false
}

func dedupeRoles(roles []models.AdminRole) []models.AdminRole {
	out := make([]models.AdminRole, 0, len(roles))
	for _, r := range roles {
		if !hasRole(out, r) {
			out = append(out, r)
		}
	}
	return out
}
