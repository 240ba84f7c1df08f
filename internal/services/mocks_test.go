package services_test

import (
	"context"
	"io"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/stretchr/testify/mock"
)

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockRoleRepository is a mock implementation of repositories.RoleRepository
type MockRoleRepository struct {
	mock.Mock
}

func (m *MockRoleRepository) GetByID(id uint) (*models.Role, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Role), args.Error(1)
}

func (m *MockRoleRepository) GetAll() ([]models.Role, error) {
	args := m.Called()
	return args.Get(0).([]models.Role), args.Error(1)
}

func (m *MockRoleRepository) EnsureNames(names []string) error {
	args := m.Called(names)
	return args.Error(0)
}

// MockProductRepository is a mock implementation of repositories.ProductRepository
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(q repositories.ProductQuery) (repositories.Page[models.Product], error) {
	args := m.Called(q)
	return args.Get(0).(repositories.Page[models.Product]), args.Error(1)
}

func (m *MockProductRepository) GetByID(id uint) (*models.Product, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) FindByIDs(ids []uint) ([]models.Product, error) {
	args := m.Called(ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(product *models.Product) error {
	args := m.Called(product)
	return args.Error(0)
}

func (m *MockProductRepository) AddImage(image *models.ProductImage) error {
	args := m.Called(image)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(id uint) ([]models.ProductImage, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ProductImage), args.Error(1)
}

// MockProductCardRepository is a mock implementation of repositories.ProductCardRepository
type MockProductCardRepository struct {
	mock.Mock
}

func (m *MockProductCardRepository) CreateAll(cards []models.ProductCard) error {
	args := m.Called(cards)
	return args.Error(0)
}

// MockCategoryRepository is a mock implementation of repositories.CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) ListMain() ([]models.MainCategory, error) {
	args := m.Called()
	return args.Get(0).([]models.MainCategory), args.Error(1)
}

func (m *MockCategoryRepository) CreateMain(main *models.MainCategory) error {
	args := m.Called(main)
	return args.Error(0)
}

func (m *MockCategoryRepository) GetMain(id uint) (*models.MainCategory, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MainCategory), args.Error(1)
}

func (m *MockCategoryRepository) GetSub(id uint) (*models.SubCategory, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubCategory), args.Error(1)
}

// MockImporter is a mock implementation of services.Importer
type MockImporter struct {
	mock.Mock
}

func (m *MockImporter) Import(ctx context.Context, rawURL string) (string, error) {
	args := m.Called(ctx, rawURL)
	return args.String(0), args.Error(1)
}

// MockImageStore is a mock implementation of services.ImageStore
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, body, size, contentType)
	return args.Error(0)
}

func (m *MockImageStore) Remove(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

// MockNotifier is a mock implementation of services.ReceiptNotifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Notify(ctx context.Context, receipt models.Receipt) error {
	args := m.Called(ctx, receipt)
	return args.Error(0)
}
