package appointment

import (
	"context"
	"time"

	domain "github.com/BruksfildServices01/teleconsult/internal/domain/appointment"
	"github.com/BruksfildServices01/teleconsult/internal/dto"
	"github.com/BruksfildServices01/teleconsult/internal/timezone"
)

type GetPatient struct {
	repo domain.Repository
	loc  *time.Location
}

func NewGetPatient(repo domain.Repository, loc *time.Location) *GetPatient {
	if loc == nil {
		loc = timezone.Location("")
	}
	return &GetPatient{repo: repo, loc: loc}
}

func (uc *GetPatient) Execute(
	ctx context.Context,
	key string,
) (*dto.PatientDTO, error) {

	ap, err := uc.repo.FindByKey(ctx, key)
	if err != nil {
		return nil, err
	}

	out := dto.PatientFromAppointment(*ap, uc.loc)
	return &out, nil
}
