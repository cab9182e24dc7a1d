package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v4"
	"golang.org/x/crypto/bcrypt"

	"gitlab.com/sprinkles/storefront/internal/db"
	"gitlab.com/sprinkles/storefront/internal/repository"
	"gitlab.com/sprinkles/storefront/internal/storage"
)

const accountColumns = `id, name, address, email, password, role, created_at`

type AccountRepo struct {
	db   db.DB
	cost int
}

func NewAccountRepo(db db.DB) storage.AccountRepository {
	return &AccountRepo{db: db, cost: bcrypt.DefaultCost}
}

// Create hashes the plaintext password and stores the account. The
// account's Password field is overwritten with the hash.
func (r *AccountRepo) Create(ctx context.Context, account *repository.Account, password string) (int64, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}
	account.Password = string(hashedPassword)

	var id int64
	err = r.db.Get(ctx, &id, `
        INSERT INTO users (name, address, email, password, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `, account.Name, account.Address, account.Email, account.Password, account.Role)
	if err != nil {
		return 0, err
	}
	account.ID = id
	return id, nil
}

func (r *AccountRepo) GetByID(ctx context.Context, id int64) (*repository.Account, error) {
	var account repository.Account
	err := r.db.Get(ctx, &account, "SELECT "+accountColumns+" FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &account, nil
}

func (r *AccountRepo) GetByEmail(ctx context.Context, email string) (*repository.Account, error) {
	var account repository.Account
	err := r.db.Get(ctx, &account, "SELECT "+accountColumns+" FROM users WHERE email = $1", email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrObjectNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Authenticate returns ErrInvalidCredentials both for an unknown email and
// for a wrong password.
func (r *AccountRepo) Authenticate(ctx context.Context, email, password string) (*repository.Account, error) {
	account, err := r.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrObjectNotFound) {
			return nil, repository.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, repository.ErrInvalidCredentials
	}
	return account, nil
}

func (r *AccountRepo) GetAll(ctx context.Context) ([]*repository.Account, error) {
	var accounts []*repository.Account
	err := r.db.Select(ctx, &accounts, "SELECT "+accountColumns+" FROM users ORDER BY id ASC")
	return accounts, err
}

func (r *AccountRepo) UpdateRole(ctx context.Context, id int64, role int16) error {
	tag, err := r.db.Exec(ctx, "UPDATE users SET role = $1 WHERE id = $2", role, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrObjectNotFound
	}
	return nil
}
