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

// ClientRepository defines the interface for client-related database operations.
type ClientRepository interface {
	CreateClient(client *models.Client) error
	GetClientByID(id uuid.UUID) (*models.Client, error)
	ListClients(q access.Query) ([]models.Client, error)
	UpdateClient(client *models.Client) error
	DeleteClient(id uuid.UUID) error
}

type clientRepository struct {
	db *sql.DB
}

// NewClientRepository creates a new instance of ClientRepository.
func NewClientRepository(db *sql.DB) ClientRepository {
	return &clientRepository{db: db}
}

var clientColumns = access.Columns{access.FieldID: "c.id"}

const clientSelect = `SELECT c.id, c.first_name, c.last_name, c.created_at, c.updated_at FROM clients c`

func scanClientRow(row scanner) (*models.Client, error) {
	var client models.Client
	err := row.Scan(&client.ID, &client.FirstName, &client.LastName, &client.CreatedAt, &client.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: scanning client: %v", ErrDatabaseError, err)
	}
	return &client, nil
}

// CreateClient inserts a new client into the database.
func (r *clientRepository) CreateClient(client *models.Client) error {
	query := `INSERT INTO clients (id, first_name, last_name, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5)`
	now := time.Now()
	client.CreatedAt, client.UpdatedAt = now, now
	if _, err := r.db.Exec(query, client.ID, client.FirstName, client.LastName, client.CreatedAt, client.UpdatedAt); err != nil {
		return mapWriteError(err, "creating client")
	}
	return nil
}

// GetClientByID retrieves a client by its ID.
func (r *clientRepository) GetClientByID(id uuid.UUID) (*models.Client, error) {
	return scanClientRow(r.db.QueryRow(clientSelect+` WHERE c.id = $1`, id))
}

// ListClients retrieves the clients matching q, ordered by last and first name.
func (r *clientRepository) ListClients(q access.Query) ([]models.Client, error) {
	where, args, err := q.Where(clientColumns, 1)
	if err != nil {
		return nil, fmt.Errorf("%w: building client query: %v", ErrDatabaseError, err)
	}

	var queryBuilder strings.Builder
	queryBuilder.WriteString(clientSelect)
	queryBuilder.WriteString(" WHERE " + where)
	queryBuilder.WriteString(" ORDER BY c.last_name COLLATE \"C\", c.first_name COLLATE \"C\", c.seq")

	rows, err := r.db.Query(queryBuilder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying clients: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	clients := []models.Client{}
	for rows.Next() {
		client, err := scanClientRow(rows)
		if err != nil {
			return nil, err
		}
		clients = append(clients, *client)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating client rows: %v", ErrDatabaseError, err)
	}
	return clients, nil
}

// UpdateClient updates an existing client in the database.
func (r *clientRepository) UpdateClient(client *models.Client) error {
	query := `UPDATE clients SET first_name = $1, last_name = $2, updated_at = $3 WHERE id = $4`
	client.UpdatedAt = time.Now()
	result, err := r.db.Exec(query, client.FirstName, client.LastName, client.UpdatedAt, client.ID)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("updating client %s", client.ID))
	}
	return checkAffected(result, "updating client")
}

// DeleteClient deletes a client from the database.
func (r *clientRepository) DeleteClient(id uuid.UUID) error {
	result, err := r.db.Exec(`DELETE FROM clients WHERE id = $1`, id)
	if err != nil {
		return mapWriteError(err, fmt.Sprintf("deleting client %s", id))
	}
	return checkAffected(result, "deleting client")
}
