package mocks

import (
	"context"

	models "university-enrollment-report/app/models/postgresql"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

type MockFichaRepo struct {
	mock.Mock
}

func (m *MockFichaRepo) FetchRange(ctx context.Context, universityID int, years []int, weekLimit int) ([]models.FichaRecord, error) {
	args := m.Called(ctx, universityID, years, weekLimit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FichaRecord), args.Error(1)
}

type MockUniversityRepo struct {
	mock.Mock
}

func (m *MockUniversityRepo) GetActive(ctx context.Context) ([]models.University, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.University), args.Error(1)
}

func (m *MockUniversityRepo) GetByID(ctx context.Context, id int) (*models.University, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.University), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
