package repositories

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
)

// UserRepository defines the interface for user profile persistence.
// Password hashes are only written by CreateUser and SetPassword.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uuid.UUID) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	ListUsers(q access.Query) ([]models.User, error)
	UpdateUser(user *models.User) error
	SetPassword(id uuid.UUID, passwordHash string) error
	DeleteUser(id uuid.UUID) error
}

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *sql.DB) UserRepository {
	return &userRepository{db: db}
}

var userColumns = access.Columns{
	access.FieldID:     "u.id",
	access.FieldRegion: "u.region_id",
}

const userSelect = `SELECT
	    u.id, u.email, u.full_name, u.role, u.region_id, u.sort_order, u.is_active, u.password_hash,
	    u.created_at, u.updated_at,
	    reg.name AS region_name, reg.sort_order AS region_sort_order
	  FROM users u
	  LEFT JOIN regions reg ON u.region_id = reg.id`

func scanUserRow(row scanner) (*models.User, error) {
	var user models.User
	var regionID uuid.NullUUID
	var regionName sql.NullString
	var regionSortOrder sql.NullInt64
	err := row.Scan(
		&user.ID, &user.Email, &user.FullName, &user.Role, &regionID, &user.SortOrder, &user.IsActive, &user.PasswordHash,
		&user.CreatedAt, &user.UpdatedAt,
		&regionName, &regionSortOrder,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning user: %v", ErrDatabaseError, err)
	}
	user.RegionID = uuidPtr(regionID)
	user.RegionName = stringPtr(regionName)
	user.RegionSortOrder = intPtr(regionSortOrder)
	return &user, nil
}

// CreateUser inserts a new user. The email is expected to be normalized already.
func (r *userRepository) CreateUser(user *models.User) error {
	query := `INSERT INTO users (id, email, full_name, role, region_id, sort_order, is_active, password_hash, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	now := time.Now()
	user.CreatedAt, user.UpdatedAt = now, now
	_, err := r.db.Exec(query,
		user.ID, user.Email, user.FullName, string(user.Role), nullUUID(user.RegionID), user.SortOrder,
		user.IsActive, user.PasswordHash, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		return mapWriteError(err, "creating user")
	}
	return nil
}

func (r *userRepository) GetUserByID(id uuid.UUID) (*models.User, error) {
	return scanUserRow(r.db.QueryRow(userSelect+` WHERE u.id = $1`, id))
}

// GetUserByEmail looks the user up case-insensitively.
func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	return scanUserRow(r.db.QueryRow(userSelect+` WHERE u.email = LOWER($1)`, strings.TrimSpace(email)))
}

// ListUsers orders by region sort order (users without a region last), then sort order and name.
func (r *userRepository) ListUsers(q access.Query) ([]models.User, error) {
	where, args, err := q.Where(userColumns, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: building user query: %v", ErrDatabaseError, err)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(userSelect)
	queryBuilder.WriteString(" WHERE " + where)
	queryBuilder.WriteString(" ORDER BY reg.sort_order ASC NULLS LAST, u.sort_order, u.full_name COLLATE \"C\", u.seq")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying users: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		user, err := scanUserRow(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating user rows: %v", ErrDatabaseError, err)
	}
	return users, nil
}

func (r *userRepository) UpdateUser(user *models.User) error {
	query := `UPDATE users SET
	            email = $1, full_name = $2, role = $3, region_id = $4, sort_order = $5, is_active = $6, updated_at = $7
	          WHERE id = $8`
	user.UpdatedAt = time.Now()
	result, err := r.db.Exec(query,
		user.Email, user.FullName, string(user.Role), nullUUID(user.RegionID), user.SortOrder, user.IsActive,
		user.UpdatedAt, user.ID,
	)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating user %s", user.ID))
	}
	return checkAffected(result, "updating user")
}

func (r *userRepository) SetPassword(id uuid.UUID, passwordHash string) error {
	result, err := r.db.Exec(`UPDATE users SET password_hash = $1, updated_at = $2 WHERE id = $3`, passwordHash, time.Now(), id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("setting password for user %s", id))
	}
	return checkAffected(result, "setting password")
}

// DeleteUser removes the user. Templates and absences cascade; shift references are set to NULL.
func (r *userRepository) DeleteUser(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting user %s", id))
	}
	return checkAffected(result, "deleting user")
}
