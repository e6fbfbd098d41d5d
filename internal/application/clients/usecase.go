package clients

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/mayorista-api/internal/application/dto"
	"github.com/jhoicas/mayorista-api/internal/domain"
	"github.com/jhoicas/mayorista-api/internal/domain/entity"
	"github.com/jhoicas/mayorista-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ClientUseCase CRUD de clientes. Balance y TotalBusinessValue no son editables
// por aquí: solo los muta el ledger dentro de sus transacciones.
type ClientUseCase struct {
	repo repository.ClientRepository
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo}
}

// Create registra un cliente nuevo con saldo en cero. Teléfono duplicado
// retorna ErrDuplicate.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, _ := uc.repo.GetByPhone(in.Phone)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	client := &entity.Client{
		ID:                 uuid.New().String(),
		Name:               in.Name,
		Phone:              in.Phone,
		Email:              in.Email,
		Address:            in.Address,
		Notes:              in.Notes,
		Balance:            decimal.Zero,
		TotalBusinessValue: decimal.Zero,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// GetByID obtiene un cliente activo.
func (uc *ClientUseCase) GetByID(ctx context.Context, id string) (*dto.ClientResponse, error) {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil || !client.Active() {
		return nil, domain.ErrClientNotFound
	}
	return toClientResponse(client), nil
}

// List lista clientes activos con paginación.
func (uc *ClientUseCase) List(ctx context.Context, limit, offset int) ([]*dto.ClientResponse, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.ClientResponse, 0, len(list))
	for _, c := range list {
		out = append(out, toClientResponse(c))
	}
	return out, nil
}

// Update edita los datos de perfil. El saldo no se toca aunque venga en el body.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	if in.Name == "" || in.Phone == "" {
		return nil, domain.ErrInvalidInput
	}
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if client == nil || !client.Active() {
		return nil, domain.ErrClientNotFound
	}
	client.Name = in.Name
	client.Phone = in.Phone
	client.Email = in.Email
	client.Address = in.Address
	client.Notes = in.Notes
	client.UpdatedAt = time.Now()
	if err := uc.repo.Update(client); err != nil {
		return nil, err
	}
	return toClientResponse(client), nil
}

// Delete borra lógicamente el cliente (DeletedAt); las entradas del ledger y
// las facturas conservan la referencia.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	client, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if client == nil || !client.Active() {
		return domain.ErrClientNotFound
	}
	return uc.repo.SoftDelete(id, time.Now())
}

func toClientResponse(c *entity.Client) *dto.ClientResponse {
	return &dto.ClientResponse{
		ID:                 c.ID,
		Name:               c.Name,
		Phone:              c.Phone,
		Email:              c.Email,
		Address:            c.Address,
		Notes:              c.Notes,
		Balance:            c.Balance,
		TotalBusinessValue: c.TotalBusinessValue,
		CreatedAt:          c.CreatedAt,
	}
}
