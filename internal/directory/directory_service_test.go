package directory_test

import (
	"context"
	"testing"

	"go-shinsei/internal/directory"
	directoryerrors "go-shinsei/internal/directory/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

type fakeRepository struct {
	users []directory.User
}

func (f *fakeRepository) FindByID(ctx context.Context, id string) (*directory.User, error) {
	for i := range f.users {
		if f.users[i].ID.String() == id {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindByCode(ctx context.Context, code string) (*directory.User, error) {
	for i := range f.users {
		if f.users[i].Code == code {
			return &f.users[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRepository) FindAll(ctx context.Context) ([]directory.User, error) {
	return f.users, nil
}

func (f *fakeRepository) FindByManager(ctx context.Context, managerID string) ([]directory.User, error) {
	var out []directory.User
	for _, u := range f.users {
		if u.ManagerID != nil && u.ManagerID.String() == managerID {
			out = append(out, u)
		}
	}
	return out, nil
}

func TestDirectoryService_Resolve(t *testing.T) {
	ctx := context.Background()

	managerID := uuid.New()
	alice := directory.User{
		ID:         uuid.New(),
		Code:       "e001",
		FullName:   "Alice Tanaka",
		Role:       directory.RoleEmployee,
		Department: "Sales",
		ManagerID:  &managerID,
	}
	svc := directory.NewService(&fakeRepository{users: []directory.User{alice}})

	t.Run("found", func(t *testing.T) {
		got, err := svc.Resolve(ctx, alice.ID.String())
		assert.NoError(t, err)
		assert.Equal(t, "Alice Tanaka", got.FullName)
		assert.NotNil(t, got.ManagerID)
		assert.Equal(t, managerID.String(), *got.ManagerID)
	})

	t.Run("missing record maps to domain error", func(t *testing.T) {
		_, err := svc.Resolve(ctx, uuid.New().String())
		assert.ErrorIs(t, err, directoryerrors.ErrUserNotFound)
	})

	t.Run("by code", func(t *testing.T) {
		got, err := svc.ResolveByCode(ctx, "e001")
		assert.NoError(t, err)
		assert.Equal(t, alice.ID.String(), got.ID)
	})
}

func TestDirectoryService_DirectReports(t *testing.T) {
	ctx := context.Background()

	managerID := uuid.New()
	reports := []directory.User{
		{ID: uuid.New(), Code: "e001", FullName: "Alice Tanaka", ManagerID: &managerID},
		{ID: uuid.New(), Code: "e003", FullName: "Ken Sato", ManagerID: &managerID},
		{ID: uuid.New(), Code: "e002", FullName: "Bob Suzuki"},
	}
	svc := directory.NewService(&fakeRepository{users: reports})

	got, err := svc.DirectReports(ctx, managerID.String())
	assert.NoError(t, err)
	assert.Len(t, got, 2)
}
