package memory

import (
	"fmt"
	"slices"

	"github.com/google/uuid"

	"care_scheduler_backend/internal/access"
	"care_scheduler_backend/internal/models"
	"care_scheduler_backend/internal/repositories"
)

func (db *DB) CreateClient(client *models.Client) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if indexByID(db.clients, client.ID, clientID) >= 0 {
		return fmt.Errorf("%w: client id %s", repositories.ErrDuplicateKey, client.ID)
	}
	now := db.now()
	client.CreatedAt, client.UpdatedAt = now, now
	db.clients = append(db.clients, *client)
	return nil
}

func (db *DB) GetClientByID(id uuid.UUID) (*models.Client, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	i := indexByID(db.clients, id, clientID)
	if i < 0 {
		return nil, repositories.ErrNotFound
	}
	client := db.clients[i]
	return &client, nil
}

func (db *DB) ListClients(q access.Query) ([]models.Client, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	out := access.Select(db.clients, q, access.ClientRow)
	access.SortClients(out)
	return out, nil
}

func (db *DB) UpdateClient(client *models.Client) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	i := indexByID(db.clients, client.ID, clientID)
	if i < 0 {
		return repositories.ErrNotFound
	}
	client.CreatedAt = db.clients[i].CreatedAt
	client.UpdatedAt = db.now()
	db.clients[i] = *client
	return nil
}

func (db *DB) DeleteClient(id uuid.UUID) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if indexByID(db.clients, id, clientID) < 0 {
		return repositories.ErrNotFound
	}
	db.clients = slices.DeleteFunc(db.clients, func(c models.Client) bool { return c.ID == id })
	return nil
}
