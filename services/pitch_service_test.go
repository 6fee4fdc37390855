package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"campsite-backend/locks"
	"campsite-backend/models"
	"campsite-backend/repository"
	"campsite-backend/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func wholePitch() *models.Pitch {
	return &models.Pitch{
		ID:         1,
		Number:     "007",
		Suffix:     models.SuffixWhole,
		Type:       models.PitchTypePiazzola,
		Status:     models.PitchStatusMaintenance,
		Attributes: datatypes.JSONMap{"electricity": true, "size_m2": 80},
	}
}

func half(id uint, suffix string) *models.Pitch {
	return &models.Pitch{ID: id, Number: "007", Suffix: suffix, Type: models.PitchTypePiazzola, Status: models.PitchStatusAvailable}
}

func TestPitchService_Split(t *testing.T) {
	repo := new(mocks.MockPitchRepository)
	svc := NewPitchService(repo, locks.NewMemoryLocker())

	repo.On("GetByID", mock.Anything, uint(1)).Return(wholePitch(), nil)
	repo.On("CountActiveBookings", mock.Anything, uint(1), mock.Anything).Return(int64(0), nil)
	repo.On("FindByNumber", mock.Anything, "007", []string{"a", "b"}).Return([]models.Pitch{}, nil)
	repo.On("Transaction", mock.Anything).Return(nil)
	repo.On("UpdateSuffix", mock.Anything, uint(1), "a").Return(nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Pitch) bool {
		return p.Number == "007" && p.Suffix == "b" && p.Status == models.PitchStatusAvailable
	})).Run(func(args mock.Arguments) {
		args.Get(1).(*models.Pitch).ID = 2
	}).Return(nil)

	pitches, err := svc.Split(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, pitches, 2)
	assert.Equal(t, uint(1), pitches[0].ID)
	assert.Equal(t, "007a", pitches[0].Label())
	assert.Equal(t, uint(2), pitches[1].ID)
	assert.Equal(t, "007b", pitches[1].Label())
	assert.Equal(t, models.PitchTypePiazzola, pitches[1].Type)
	assert.Equal(t, pitches[0].Attributes, pitches[1].Attributes)
	repo.AssertExpectations(t)
}

func TestPitchService_Split_SiblingAttributesAreCopied(t *testing.T) {
	repo := new(mocks.MockPitchRepository)
	svc := NewPitchService(repo, locks.NewMemoryLocker())

	original := wholePitch()
	repo.On("GetByID", mock.Anything, uint(1)).Return(original, nil)
	repo.On("CountActiveBookings", mock.Anything, uint(1), mock.Anything).Return(int64(0), nil)
	repo.On("FindByNumber", mock.Anything, "007", []string{"a", "b"}).Return([]models.Pitch{}, nil)
	repo.On("Transaction", mock.Anything).Return(nil)
	repo.On("UpdateSuffix", mock.Anything, uint(1), "a").Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	pitches, err := svc.Split(context.Background(), 1)
	require.NoError(t, err)

	pitches[1].Attributes["electricity"] = false
	assert.Equal(t, true, original.Attributes["electricity"])
}

func TestPitchService_Split_Conflicts(t *testing.T) {
	tests := []struct {
		name  string
		setup func(repo *mocks.MockPitchRepository)
	}{
		{
			name: "pitch already split",
			setup: func(repo *mocks.MockPitchRepository) {
				repo.On("GetByID", mock.Anything, uint(1)).Return(half(1, "a"), nil)
			},
		},
		{
			name: "halves of the same number already exist",
			setup: func(repo *mocks.MockPitchRepository) {
				repo.On("GetByID", mock.Anything, uint(1)).Return(wholePitch(), nil)
				repo.On("CountActiveBookings", mock.Anything, uint(1), mock.Anything).Return(int64(0), nil)
				repo.On("FindByNumber", mock.Anything, "007", []string{"a", "b"}).Return([]models.Pitch{*half(8, "a"), *half(9, "b")}, nil)
			},
		},
		{
			name: "current or upcoming bookings",
			setup: func(repo *mocks.MockPitchRepository) {
				repo.On("GetByID", mock.Anything, uint(1)).Return(wholePitch(), nil)
				repo.On("CountActiveBookings", mock.Anything, uint(1), mock.Anything).Return(int64(2), nil)
			},
		},
		{
			name: "unique index rejects the new half",
			setup: func(repo *mocks.MockPitchRepository) {
				repo.On("GetByID", mock.Anything, uint(1)).Return(wholePitch(), nil)
				repo.On("CountActiveBookings", mock.Anything, uint(1), mock.Anything).Return(int64(0), nil)
				repo.On("FindByNumber", mock.Anything, "007", []string{"a", "b"}).Return([]models.Pitch{}, nil)
				repo.On("Transaction", mock.Anything).Return(nil)
				repo.On("UpdateSuffix", mock.Anything, uint(1), "a").Return(nil)
				repo.On("Create", mock.Anything, mock.Anything).Return(fmt.Errorf("create pitch: %w", repository.ErrDuplicate))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockPitchRepository)
			tt.setup(repo)
			svc := NewPitchService(repo, locks.NewMemoryLocker())

			pitches, err := svc.Split(context.Background(), 1)

			assert.Nil(t, pitches)
			assert.ErrorIs(t, err, ErrConflict)
		})
	}
}

func TestPitchService_Split_SecondSplitOfSameNumber(t *testing.T) {
	repo := new(mocks.MockPitchRepository)
	svc := NewPitchService(repo, locks.NewMemoryLocker())

	original := wholePitch()
	repo.On("GetByID", mock.Anything, uint(1)).Return(original, nil)
	repo.On("CountActiveBookings", mock.Anything, uint(1), mock.Anything).Return(int64(0), nil)
	repo.On("FindByNumber", mock.Anything, "007", []string{"a", "b"}).Return([]models.Pitch{}, nil).Once()
	repo.On("Transaction", mock.Anything).Return(nil)
	repo.On("UpdateSuffix", mock.Anything, uint(1), "a").Return(nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Split(context.Background(), 1)
	require.NoError(t, err)

	// the stored row now carries suffix "a"
	original.Suffix = models.SuffixA
	_, err = svc.Split(context.Background(), 1)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestPitchService_Split_NotFound(t *testing.T) {
	repo := new(mocks.MockPitchRepository)
	svc := NewPitchService(repo, locks.NewMemoryLocker())
	repo.On("GetByID", mock.Anything, uint(99)).Return(nil, repository.ErrNotFound)

	_, err := svc.Split(context.Background(), 99)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "pitch not found", Message(err))
}

func TestPitchService_Split_NumberLocked(t *testing.T) {
	repo := new(mocks.MockPitchRepository)
	locker := locks.NewMemoryLocker()
	svc := NewPitchService(repo, locker)
	repo.On("GetByID", mock.Anything, uint(1)).Return(wholePitch(), nil)

	release, err := locker.Lock(context.Background(), "pitch:007")
	require.NoError(t, err)
	defer release()

	_, err = svc.Split(context.Background(), 1)

	assert.ErrorIs(t, err, ErrConflict)
	repo.AssertNotCalled(t, "Transaction", mock.Anything)
}

func TestPitchService_Split_TransactionFailure(t *testing.T) {
	repo := new(mocks.MockPitchRepository)
	svc := NewPitchService(repo, locks.NewMemoryLocker())
	repo.On("GetByID", mock.Anything, uint(1)).Return(wholePitch(), nil)
	repo.On("CountActiveBookings", mock.Anything, uint(1), mock.Anything).Return(int64(0), nil)
	repo.On("FindByNumber", mock.Anything, "007", []string{"a", "b"}).Return([]models.Pitch{}, nil)
	repo.On("Transaction", mock.Anything).Return(errors.New("deadlock found"))

	_, err := svc.Split(context.Background(), 1)

	assert.ErrorIs(t, err, ErrStorage)
}

func TestPitchService_Merge(t *testing.T) {
	repo := new(mocks.MockPitchRepository)
	svc := NewPitchService(repo, locks.NewMemoryLocker())

	repo.On("GetByID", mock.Anything, uint(1)).Return(half(1, "a"), nil)
	repo.On("GetByID", mock.Anything, uint(2)).Return(half(2, "b"), nil)
	repo.On("CountActiveBookings", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)
	repo.On("FindByNumber", mock.Anything, "007", []string{""}).Return([]models.Pitch{}, nil)
	repo.On("Transaction", mock.Anything).Return(nil)
	repo.On("MoveBookings", mock.Anything, uint(2), uint(1)).Return(nil)
	repo.On("Delete", mock.Anything, uint(2)).Return(nil)
	repo.On("UpdateSuffix", mock.Anything, uint(1), "").Return(nil)

	// argument order does not decide which half survives
	pitch, err := svc.Merge(context.Background(), 2, 1)

	require.NoError(t, err)
	assert.Equal(t, uint(1), pitch.ID)
	assert.Equal(t, "007", pitch.Label())
	repo.AssertExpectations(t)
}

func TestPitchService_Merge_Validation(t *testing.T) {
	tests := []struct {
		name  string
		a, b  *models.Pitch
		wantE error
	}{
		{"two a halves", half(1, "a"), half(2, "a"), ErrValidation},
		{"two b halves", half(1, "b"), half(2, "b"), ErrValidation},
		{"whole with half", half(1, ""), half(2, "b"), ErrValidation},
		{"different numbers", half(1, "a"), &models.Pitch{ID: 2, Number: "008", Suffix: "b"}, ErrValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockPitchRepository)
			svc := NewPitchService(repo, locks.NewMemoryLocker())
			repo.On("GetByID", mock.Anything, tt.a.ID).Return(tt.a, nil)
			repo.On("GetByID", mock.Anything, tt.b.ID).Return(tt.b, nil)

			pitch, err := svc.Merge(context.Background(), tt.a.ID, tt.b.ID)

			assert.Nil(t, pitch)
			assert.ErrorIs(t, err, tt.wantE)
			repo.AssertNotCalled(t, "Transaction", mock.Anything)
		})
	}
}

func TestPitchService_Merge_SamePitch(t *testing.T) {
	repo := new(mocks.MockPitchRepository)
	svc := NewPitchService(repo, locks.NewMemoryLocker())

	_, err := svc.Merge(context.Background(), 4, 4)

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestPitchService_Merge_Conflicts(t *testing.T) {
	tests := []struct {
		name  string
		setup func(repo *mocks.MockPitchRepository)
	}{
		{
			name: "b half has upcoming bookings",
			setup: func(repo *mocks.MockPitchRepository) {
				repo.On("CountActiveBookings", mock.Anything, uint(1), mock.Anything).Return(int64(0), nil)
				repo.On("CountActiveBookings", mock.Anything, uint(2), mock.Anything).Return(int64(1), nil)
			},
		},
		{
			name: "whole pitch with the same number exists",
			setup: func(repo *mocks.MockPitchRepository) {
				repo.On("CountActiveBookings", mock.Anything, mock.Anything, mock.Anything).Return(int64(0), nil)
				repo.On("FindByNumber", mock.Anything, "007", []string{""}).Return([]models.Pitch{*wholePitch()}, nil)
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockPitchRepository)
			repo.On("GetByID", mock.Anything, uint(1)).Return(half(1, "a"), nil)
			repo.On("GetByID", mock.Anything, uint(2)).Return(half(2, "b"), nil)
			tt.setup(repo)
			svc := NewPitchService(repo, locks.NewMemoryLocker())

			_, err := svc.Merge(context.Background(), 1, 2)

			assert.ErrorIs(t, err, ErrConflict)
			repo.AssertNotCalled(t, "Transaction", mock.Anything)
		})
	}
}

func TestPitchService_Merge_NotFound(t *testing.T) {
	repo := new(mocks.MockPitchRepository)
	svc := NewPitchService(repo, locks.NewMemoryLocker())
	repo.On("GetByID", mock.Anything, uint(1)).Return(half(1, "a"), nil)
	repo.On("GetByID", mock.Anything, uint(2)).Return(nil, repository.ErrNotFound)

	_, err := svc.Merge(context.Background(), 1, 2)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, "pitch 2 not found", Message(err))
}

func TestPitchService_Create(t *testing.T) {
	repo := new(mocks.MockPitchRepository)
	svc := NewPitchService(repo, locks.NewMemoryLocker())

	repo.On("FindByNumber", mock.Anything, "012", []string(nil)).Return([]models.Pitch{}, nil)
	repo.On("Create", mock.Anything, mock.MatchedBy(func(p *models.Pitch) bool {
		return p.Number == "012" && p.Suffix == "" && p.Status == models.PitchStatusAvailable
	})).Return(nil)

	pitch, err := svc.Create(context.Background(), PitchInput{Number: "12", Type: "tenda"})

	require.NoError(t, err)
	assert.Equal(t, "012", pitch.Number)
	assert.Equal(t, models.PitchTypeTenda, pitch.Type)
	repo.AssertExpectations(t)
}

func TestPitchService_Create_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		input PitchInput
		setup func(repo *mocks.MockPitchRepository)
		want  error
	}{
		{"non numeric number", PitchInput{Number: "A1", Type: "tenda"}, nil, ErrValidation},
		{"unknown type", PitchInput{Number: "3", Type: "glamping"}, nil, ErrValidation},
		{"unknown status", PitchInput{Number: "3", Type: "tenda", Status: "closed"}, nil, ErrValidation},
		{
			name:  "number already used by split halves",
			input: PitchInput{Number: "7", Type: "piazzola"},
			setup: func(repo *mocks.MockPitchRepository) {
				repo.On("FindByNumber", mock.Anything, "007", []string(nil)).Return([]models.Pitch{*half(1, "a"), *half(2, "b")}, nil)
			},
			want: ErrConflict,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(mocks.MockPitchRepository)
			if tt.setup != nil {
				tt.setup(repo)
			}
			svc := NewPitchService(repo, locks.NewMemoryLocker())

			_, err := svc.Create(context.Background(), tt.input)

			assert.ErrorIs(t, err, tt.want)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestPitchService_Delete(t *testing.T) {
	t.Run("with bookings", func(t *testing.T) {
		repo := new(mocks.MockPitchRepository)
		svc := NewPitchService(repo, locks.NewMemoryLocker())
		repo.On("GetByID", mock.Anything, uint(1)).Return(wholePitch(), nil)
		repo.On("CountBookings", mock.Anything, uint(1)).Return(int64(3), nil)

		err := svc.Delete(context.Background(), 1)

		assert.ErrorIs(t, err, ErrConflict)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("unused pitch", func(t *testing.T) {
		repo := new(mocks.MockPitchRepository)
		svc := NewPitchService(repo, locks.NewMemoryLocker())
		repo.On("GetByID", mock.Anything, uint(1)).Return(wholePitch(), nil)
		repo.On("CountBookings", mock.Anything, uint(1)).Return(int64(0), nil)
		repo.On("Delete", mock.Anything, uint(1)).Return(nil)

		require.NoError(t, svc.Delete(context.Background(), 1))
		repo.AssertExpectations(t)
	})
}

func TestPitchService_Update(t *testing.T) {
	repo := new(mocks.MockPitchRepository)
	svc := NewPitchService(repo, locks.NewMemoryLocker())
	repo.On("GetByID", mock.Anything, uint(1)).Return(wholePitch(), nil)
	repo.On("Update", mock.Anything, mock.MatchedBy(func(p *models.Pitch) bool {
		return p.Status == models.PitchStatusBlocked && p.Number == "007"
	})).Return(nil)

	status := "blocked"
	pitch, err := svc.Update(context.Background(), 1, PitchUpdate{Status: &status})

	require.NoError(t, err)
	assert.Equal(t, models.PitchStatusBlocked, pitch.Status)

	bad := "broken"
	_, err = svc.Update(context.Background(), 1, PitchUpdate{Status: &bad})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestNormalizePitchNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"7", "007", false},
		{"042", "042", false},
		{" 120 ", "120", false},
		{"1250", "1250", false},
		{"", "", true},
		{"0", "", true},
		{"-3", "", true},
		{"12b", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := NormalizePitchNumber(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
