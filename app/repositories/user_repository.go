package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/nexus/app/models"
	"github.com/shashiranjanraj/nexus/pkg/auth"
	"github.com/shashiranjanraj/nexus/pkg/metrics"
)

// UserRepository handles relational-store operations for User.
type UserRepository struct {
	db     *gorm.DB
	hasher *auth.Hasher
}

func NewUserRepository(db *gorm.DB, hasher *auth.Hasher) *UserRepository {
	return &UserRepository{db: db, hasher: hasher}
}

// FindByEmail looks up a user by their email address. A missing user is
// (nil, nil).
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	defer metrics.ObserveStore("users", "select", time.Now())

	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", email).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, storeError("find user by email", err)
	}
	return &user, nil
}

// Create hashes password and inserts a new user. The unique index on email
// decides concurrent registrations; the loser gets ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, email, password string) (*models.User, error) {
	digest, err := r.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	defer metrics.ObserveStore("users", "insert", time.Now())

	session := r.db.WithContext(ctx)
	user := models.User{Email: email, HashedPassword: digest, IsActive: true}
	if err := session.Create(&user).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: %s", models.ErrDuplicateEmail, email)
		}
		return nil, storeError("create user", err)
	}

	// Read the row back so column defaults applied by the store are visible.
	var saved models.User
	if err := session.Take(&saved, user.ID).Error; err != nil {
		return nil, storeError("reload user", err)
	}
	return &saved, nil
}

// Authenticate returns the user when password matches, otherwise (nil, nil).
// Unknown emails still pay for one bcrypt comparison, so the two failure
// modes cannot be told apart by timing.
func (r *UserRepository) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := r.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		r.hasher.Burn(password)
		return nil, nil
	}
	if !r.hasher.Verify(password, user.HashedPassword) {
		return nil, nil
	}
	return user, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgerrcode.UniqueViolation
	}

	// sqlite, mysql and sqlserver drivers without error translation.
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "duplicate entry") ||
		strings.Contains(msg, "duplicate key")
}
