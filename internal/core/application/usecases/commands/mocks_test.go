package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/domain/model/delivery"
	"parceltrack/internal/core/domain/model/driver"
	"parceltrack/internal/core/domain/model/kernel"
	"parceltrack/internal/core/domain/model/vehicle"
	"parceltrack/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockDeliveryRepository struct{ mock.Mock }

func (m *MockDeliveryRepository) Add(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Update(ctx context.Context, d *delivery.Delivery) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDeliveryRepository) Get(ctx context.Context, id kernel.UUID) (*delivery.Delivery, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) ListByStatus(
	ctx context.Context,
	statuses ...delivery.Status,
) ([]*delivery.Delivery, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) ListIDsByStatus(
	ctx context.Context,
	statuses ...delivery.Status,
) ([]kernel.UUID, error) {
	args := m.Called(ctx, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockDeliveryRepository) GetFirstUnassigned(ctx context.Context) (*delivery.Delivery, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*delivery.Delivery), args.Error(1)
}

func (m *MockDeliveryRepository) CountActiveByVehicle(ctx context.Context, id kernel.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDeliveryRepository) CountActiveByDriver(ctx context.Context, id kernel.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

type MockDriverRepository struct{ mock.Mock }

func (m *MockDriverRepository) Add(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Update(ctx context.Context, d *driver.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAll(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

func (m *MockDriverRepository) GetAllFree(ctx context.Context) ([]*driver.Driver, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*driver.Driver), args.Error(1)
}

type MockVehicleRepository struct{ mock.Mock }

func (m *MockVehicleRepository) Add(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Update(ctx context.Context, v *vehicle.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) Get(ctx context.Context, id kernel.UUID) (*vehicle.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*vehicle.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetAll(ctx context.Context) ([]*vehicle.Vehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*vehicle.Vehicle), args.Error(1)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) DeliveryRepository() ports.DeliveryRepository {
	args := m.Called()
	return args.Get(0).(ports.DeliveryRepository)
}

func (m *MockUoW) DriverRepository() ports.DriverRepository {
	args := m.Called()
	return args.Get(0).(ports.DriverRepository)
}

func (m *MockUoW) VehicleRepository() ports.VehicleRepository {
	args := m.Called()
	return args.Get(0).(ports.VehicleRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockPublisher struct{ mock.Mock }

func (m *MockPublisher) Publish(ctx context.Context, events ...kernel.Event) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// fakeLocker records lock and unlock order.
type fakeLocker struct {
	mu       sync.Mutex
	locked   []string
	unlocked []string
	failOn   string
}

func (l *fakeLocker) Lock(_ context.Context, key string) (ports.Unlock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if key == l.failOn {
		return nil, ports.ErrLockNotAcquired
	}
	l.locked = append(l.locked, key)
	return func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		l.unlocked = append(l.unlocked, key)
	}, nil
}

// env wires a runtime over fresh mocks. Tests register expectations on the
// mocks they need.
type env struct {
	deliveries *MockDeliveryRepository
	drivers    *MockDriverRepository
	vehicles   *MockVehicleRepository
	uow        *MockUoW
	factory    *MockUoWFactory
	publisher  *MockPublisher
	locker     *fakeLocker
	rt         commands.Runtime
}

var now = time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)

func newEnv() *env {
	e := &env{
		deliveries: new(MockDeliveryRepository),
		drivers:    new(MockDriverRepository),
		vehicles:   new(MockVehicleRepository),
		uow:        new(MockUoW),
		factory:    new(MockUoWFactory),
		publisher:  new(MockPublisher),
		locker:     &fakeLocker{},
	}
	e.uow.On("DeliveryRepository").Return(e.deliveries).Maybe()
	e.uow.On("DriverRepository").Return(e.drivers).Maybe()
	e.uow.On("VehicleRepository").Return(e.vehicles).Maybe()
	e.rt = commands.Runtime{
		UoWFactory: e.factory,
		Locker:     e.locker,
		Publisher:  e.publisher,
		Clock:      func() time.Time { return now },
	}
	return e
}

func (e *env) assertExpectations(t *testing.T) {
	t.Helper()
	e.deliveries.AssertExpectations(t)
	e.drivers.AssertExpectations(t)
	e.vehicles.AssertExpectations(t)
	e.uow.AssertExpectations(t)
	e.factory.AssertExpectations(t)
	e.publisher.AssertExpectations(t)
}

// expectTx registers the transaction frame of a successful use case.
func (e *env) expectTx(ctx context.Context) {
	e.factory.On("Create").Return(e.uow).Once()
	e.uow.On("Begin", ctx).Return(nil).Once()
	e.uow.On("Commit", ctx).Return(nil).Once()
	e.uow.On("Rollback", ctx).Return(nil).Once()
}

// expectFailedTx registers the frame of a use case that fails before commit.
func (e *env) expectFailedTx(ctx context.Context) {
	e.factory.On("Create").Return(e.uow).Once()
	e.uow.On("Begin", ctx).Return(nil).Once()
	e.uow.On("Rollback", ctx).Return(nil).Once()
}
