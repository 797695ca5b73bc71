package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/tu-usuario/aeropartes-api/internal/application/dto"
	"github.com/tu-usuario/aeropartes-api/internal/domain"
	"github.com/tu-usuario/aeropartes-api/internal/domain/entity"
	"github.com/tu-usuario/aeropartes-api/internal/domain/repository"
)

// PartUseCase casos de uso del catálogo de partes.
type PartUseCase struct {
	repo repository.PartRepository
}

// NewPartUseCase construye el caso de uso.
func NewPartUseCase(repo repository.PartRepository) *PartUseCase {
	return &PartUseCase{repo: repo}
}

// Create crea una nueva parte. Part number duplicado dentro de la empresa es conflicto.
func (uc *PartUseCase) Create(companyID string, in dto.CreatePartRequest) (*dto.PartResponse, error) {
	if in.PartNumber == "" || in.UnitMeasure == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	part := &entity.Part{
		ID:              uuid.New().String(),
		CompanyID:       companyID,
		PartNumber:      in.PartNumber,
		Description:     in.Description,
		UnitMeasure:     in.UnitMeasure,
		IsSerialized:    in.IsSerialized,
		IsLotControlled: in.IsLotControlled,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.repo.Create(part); err != nil {
		return nil, err
	}
	return toPartResponse(part), nil
}

// GetByPartNumber obtiene una parte por número dentro de la empresa.
func (uc *PartUseCase) GetByPartNumber(companyID, partNumber string) (*dto.PartResponse, error) {
	part, err := uc.repo.GetByPartNumber(companyID, partNumber)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, nil
	}
	return toPartResponse(part), nil
}

// List lista partes por empresa con paginación.
func (uc *PartUseCase) List(companyID string, limit, offset int) ([]dto.PartResponse, error) {
	list, err := uc.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.PartResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPartResponse(p))
	}
	return items, nil
}

func toPartResponse(p *entity.Part) *dto.PartResponse {
	if p == nil {
		return nil
	}
	return &dto.PartResponse{
		ID:              p.ID,
		PartNumber:      p.PartNumber,
		Description:     p.Description,
		UnitMeasure:     p.UnitMeasure,
		IsSerialized:    p.IsSerialized,
		IsLotControlled: p.IsLotControlled,
		CreatedAt:       p.CreatedAt,
	}
}
