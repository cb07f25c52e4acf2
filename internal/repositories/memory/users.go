package memory

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
	"care_scheduler_backend/pkg/utils"
)

func (db *DB) CreateUser(user *models.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if db.userExists(user.ID) {
		return fmt.Errorf("%w: user id %s", repositories.ErrDuplicateKey, user.ID)
	}
	if err := db.checkUserLocked(user); err != nil {
		return err
	}
	now := db.now()
	user.CreatedAt, user.UpdatedAt = now, now
	db.users = append(db.users, storedUser(user))
	db.decorateUser(user)
	return nil
}

func (db *DB) GetUserByID(id uuid.UUID) (*models.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	i := indexByID(db.users, id, userID)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	user := db.loadUser(i)
	return &user, nil
}

func (db *DB) GetUserByEmail(email string) (*models.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	email = utils.NormalizeEmail(email)
	i := slices.IndexFunc(db.users, func(u models.User) bool { return u.Email == email })
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	user := db.loadUser(i)
	return &user, nil
}

func (db *DB) ListUsers(q access.Query) ([]models.User, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	all := make([]models.User, len(db.users))
	for i := range db.users {
		all[i] = db.loadUser(i)
	}
	out := access.Select(all, q, access.ProfileRow)
	access.SortUsers(out)
	return out, nil
}

// UpdateUser stores the profile fields. The stored password hash is kept.
func (db *DB) UpdateUser(user *models.User) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := indexByID(db.users, user.ID, userID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	if err := db.checkUserLocked(user); err != nil {
		return err
	}
	stored := storedUser(user)
	stored.PasswordHash = db.users[i].PasswordHash
	stored.CreatedAt = db.users[i].CreatedAt
	stored.UpdatedAt = db.now()
	db.users[i] = stored
	user.CreatedAt, user.UpdatedAt = stored.CreatedAt, stored.UpdatedAt
	user.PasswordHash = stored.PasswordHash
	db.decorateUser(user)
	return nil
}

func (db *DB) SetPassword(id uuid.UUID, passwordHash string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := indexByID(db.users, id, userID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	db.users[i].PasswordHash = passwordHash
	db.users[i].UpdatedAt = db.now()
	return nil
}

// DeleteUser removes the user with its templates and absences and clears it from shifts.
func (db *DB) DeleteUser(id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if !db.userExists(id) {
		return repositories.ErrNotFound
	}
	db.users = slices.DeleteFunc(db.users, func(u models.User) bool { return u.ID == id })

	for i := range db.shifts {
		s := &db.shifts[i]
		if s.EmployeeID != nil && *s.EmployeeID == id {
			s.EmployeeID = nil
		}
		if s.CreatedByID != nil && *s.CreatedByID == id {
			s.CreatedByID = nil
		}
		if s.OriginalEmployeeID != nil && *s.OriginalEmployeeID == id {
			s.OriginalEmployeeID = nil
		}
	}

	var doomed []uuid.UUID
	for _, t := range db.templates {
		if t.EmployeeID == id {
			doomed = append(doomed, t.ID)
		}
	}
	for _, tid := range doomed {
		db.deleteWeeklyTemplateLocked(tid)
	}
	db.absences = slices.DeleteFunc(db.absences, func(a models.Absence) bool { return a.EmployeeID == id })
	return nil
}

// Caller must hold db.mu.
func (db *DB) checkUserLocked(user *models.User) error {
	for _, u := range db.users {
		if u.Email == user.Email && u.ID != user.ID {
			return fmt.Errorf("%w: email %q", repositories.ErrDuplicateKey, user.Email)
		}
	}
	if !db.optionalRegionExists(user.RegionID) {
		return fmt.Errorf("%w: region %s", repositories.ErrInvalidReference, *user.RegionID)
	}
	return nil
}

func storedUser(user *models.User) models.User {
	stored := *user
	stored.RegionID = cloneUUID(user.RegionID)
	stored.RegionName = nil
	stored.RegionSortOrder = nil
	return stored
}

// Caller must hold db.mu.
func (db *DB) loadUser(i int) models.User {
	user := db.users[i]
	user.RegionID = cloneUUID(user.RegionID)
	db.decorateUser(&user)
	return user
}

// Caller must hold db.mu.
func (db *DB) decorateUser(user *models.User) {
	user.RegionName, user.RegionSortOrder = nil, nil
	if user.RegionID == nil {
		return
	}
	if j := indexByID(db.regions, *user.RegionID, regionID); j >= 0 {
		name, order := db.regions[j].Name, db.regions[j].SortOrder
		user.RegionName, user.RegionSortOrder = &name, &order
	}
}
