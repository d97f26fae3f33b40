package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/joshua-takyi/carnivalxperience/internal/dto"
	"github.com/joshua-takyi/carnivalxperience/internal/models"
)

type VoteService struct {
	bands models.BandRepo
}

func NewVoteService(bands models.BandRepo) *VoteService {
	return &VoteService{bands: bands}
}

// ListBands returns the bands competing in year, or the current year when
// year is zero.
func (vs *VoteService) ListBands(ctx context.Context, year int) ([]dto.BandResponse, error) {
	if year == 0 {
		year = timeNow().Year()
	}
	if year < 2000 || year > 2100 {
		return nil, models.Invalid("year is out of range")
	}
	bands, err := vs.bands.ListBands(ctx, year)
	if err != nil {
		return nil, err
	}
	return dto.MapSlice(bands, dto.ToBandResponse), nil
}

// Vote records one vote for the current year's competition. A second vote by
// the same user in the same year fails with ErrAlreadyVoted.
func (vs *VoteService) Vote(ctx context.Context, userID uuid.UUID, bandID string) (*dto.BandResponse, error) {
	id, err := parseID("bandId", bandID)
	if err != nil {
		return nil, err
	}
	year := timeNow().Year()
	if _, err := vs.bands.GetBand(ctx, id, year); err != nil {
		return nil, err
	}

	err = vs.bands.InsertVote(ctx, &models.BandVote{
		ID:        uuid.New(),
		UserID:    userID,
		BandID:    id,
		Year:      year,
		CreatedAt: timeNow(),
	})
	if err != nil {
		if errors.Is(err, models.ErrConflict) {
			return nil, models.ErrAlreadyVoted
		}
		return nil, err
	}

	band, err := vs.bands.GetBand(ctx, id, year)
	if err != nil {
		return nil, err
	}
	res := dto.ToBandResponse(band)
	return &res, nil
}
