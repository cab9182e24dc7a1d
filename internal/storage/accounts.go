package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"gitlab.com/sprinkles/storefront/internal/repository"
)

const minPasswordLength = 6

// Signup validates the form and creates a Customer or Delivery account.
// Every failed rule is reported, not only the first one.
func (s *Storage) Signup(ctx context.Context, form SignupForm) (int64, error) {
	form.Name = strings.TrimSpace(form.Name)
	form.Address = strings.TrimSpace(form.Address)
	form.Email = strings.TrimSpace(form.Email)

	var messages []string
	if form.Name == "" || form.Address == "" || form.Email == "" ||
		form.Password == "" || form.Password2 == "" || strings.TrimSpace(form.Type) == "" {
		messages = append(messages, "Please enter all fields")
	}
	if len(form.Password) < minPasswordLength {
		messages = append(messages, fmt.Sprintf("Password should be at least %d characters long", minPasswordLength))
	}
	if len(form.Password) > maxPasswordBytes {
		messages = append(messages, fmt.Sprintf("Password should be at most %d characters long", maxPasswordBytes))
	}
	if tooLong(form.Name, maxTextLength) || tooLong(form.Address, maxTextLength) || tooLong(form.Email, maxTextLength) {
		messages = append(messages, fmt.Sprintf("Name, address and email must be at most %d characters", maxTextLength))
	}
	if form.Password != form.Password2 {
		messages = append(messages, "Passwords do not match")
	}
	role, err := ParseRole(form.Type)
	if strings.TrimSpace(form.Type) != "" && (err != nil || role == RoleAdmin) {
		messages = append(messages, "Please select a valid account type")
	}
	if len(messages) > 0 {
		return 0, newValidationError(messages...)
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err = s.accountRepo.GetByEmail(ctx, form.Email)
	switch {
	case err == nil:
		return 0, newConflictError("Email already in use")
	case !errors.Is(err, repository.ErrObjectNotFound):
		return 0, classify("signup", err)
	}

	account := &repository.Account{
		Name:    form.Name,
		Address: form.Address,
		Email:   form.Email,
		Role:    int16(role),
	}
	id, err := s.accountRepo.Create(ctx, account, form.Password)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, newConflictError("Email already in use")
		}
		return 0, classify("signup", err)
	}

	s.logger.Info("account created", zap.Int64("account_id", id), zap.Stringer("role", role))
	return id, nil
}

// Authenticate returns ErrAuthentication for an unknown email and for a wrong
// password alike.
func (s *Storage) Authenticate(ctx context.Context, email, password string) (*Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	repoAccount, err := s.accountRepo.Authenticate(ctx, strings.TrimSpace(email), password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			return nil, ErrAuthentication
		}
		return nil, classify("authenticate", err)
	}
	account := toAccount(repoAccount)
	return &account, nil
}

func (s *Storage) GetAccount(ctx context.Context, id int64) (*Account, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	repoAccount, err := s.accountRepo.GetByID(ctx, id)
	if err != nil {
		return nil, classify("get_account", err)
	}
	account := toAccount(repoAccount)
	return &account, nil
}

func (s *Storage) ListAccounts(ctx context.Context, actor Account) ([]Account, error) {
	if err := requireRole(actor, RoleAdmin); err != nil {
		return nil, err
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	repoAccounts, err := s.accountRepo.GetAll(ctx)
	if err != nil {
		return nil, classify("list_accounts", err)
	}
	accounts := make([]Account, len(repoAccounts))
	for i, a := range repoAccounts {
		accounts[i] = toAccount(a)
	}
	return accounts, nil
}

func (s *Storage) UpdateAccountRole(ctx context.Context, actor Account, accountID int64, newRole Role) error {
	if err := requireRole(actor, RoleAdmin); err != nil {
		return err
	}
	if !newRole.Valid() {
		return newValidationError("Please select a valid role")
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	if err := s.accountRepo.UpdateRole(ctx, accountID, int16(newRole)); err != nil {
		return classify("update_account_role", err)
	}

	s.logger.Info("account role updated",
		zap.Int64("account_id", accountID),
		zap.Stringer("role", newRole),
		zap.Int64("admin_id", actor.ID),
	)
	return nil
}

// EnsureAdmin makes sure the seeded administrator exists and holds the Admin
// role. An empty seed email disables seeding.
func (s *Storage) EnsureAdmin(ctx context.Context, seed AdminSeed) error {
	if seed.Email == "" {
		s.logger.Warn("admin seed email not configured, skipping admin bootstrap")
		return nil
	}

	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	existing, err := s.accountRepo.GetByEmail(ctx, seed.Email)
	switch {
	case err == nil:
		if Role(existing.Role) == RoleAdmin {
			return nil
		}
		if err := s.accountRepo.UpdateRole(ctx, existing.ID, int16(RoleAdmin)); err != nil {
			return classify("ensure_admin", err)
		}
		s.logger.Info("promoted seeded account to admin", zap.Int64("account_id", existing.ID))
		return nil
	case !errors.Is(err, repository.ErrObjectNotFound):
		return classify("ensure_admin", err)
	}

	if len(seed.Password) < minPasswordLength {
		return newValidationError(fmt.Sprintf("Admin password should be at least %d characters long", minPasswordLength))
	}
	if len(seed.Password) > maxPasswordBytes {
		return newValidationError(fmt.Sprintf("Admin password should be at most %d characters long", maxPasswordBytes))
	}
	if tooLong(seed.Name, maxTextLength) || tooLong(seed.Address, maxTextLength) || tooLong(seed.Email, maxTextLength) {
		return newValidationError(fmt.Sprintf("Admin name, address and email must be at most %d characters", maxTextLength))
	}

	admin := &repository.Account{
		Name:    seed.Name,
		Address: seed.Address,
		Email:   seed.Email,
		Role:    int16(RoleAdmin),
	}
	id, err := s.accountRepo.Create(ctx, admin, seed.Password)
	if err != nil {
		return classify("ensure_admin", err)
	}
	s.logger.Info("admin account created", zap.Int64("account_id", id))
	return nil
}
