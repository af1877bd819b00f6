package service

import (
	"context"
	"sort"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"labwhere/backend/internal/model"
	"labwhere/backend/internal/repository"
	pkgerrors "labwhere/backend/pkg/errors"
)

// ── 内存 Mock 仓储 ──
// 四个 Mock 仓储共享一个 store，以便模拟跨表外键约束：
// 违反外键时返回 *pgconn.PgError(23503)，与真实 postgres 驱动的错误链一致

type mockStore struct {
	locationTypes map[uint]*model.LocationType
	locations     map[uint]*model.Location
	labwares      map[uint]*model.Labware
	scans         map[uint]*model.Scan

	nextLocationTypeID uint
	nextLocationID     uint
	nextLabwareID      uint
	nextScanID         uint
}

func newMockStore() *mockStore {
	return &mockStore{
		locationTypes: make(map[uint]*model.LocationType),
		locations:     make(map[uint]*model.Location),
		labwares:      make(map[uint]*model.Labware),
		scans:         make(map[uint]*model.Scan),
	}
}

func fkViolation(constraint string) error {
	return &pgconn.PgError{
		Code:           pkgerrors.ForeignKeyViolationCode,
		ConstraintName: constraint,
	}
}

// newTestService 构建基于内存 Mock 仓储的 Service 依赖
func newTestService() (*repository.Repository, *mockStore, *zap.Logger) {
	store := newMockStore()
	repo := &repository.Repository{
		LocationType: &mockLocationTypeRepo{store: store},
		Location:     &mockLocationRepo{store: store},
		Labware:      &mockLabwareRepo{store: store},
		Scan:         &mockScanRepo{store: store},
	}
	return repo, store, zap.NewNop()
}

// ── LocationTypeRepository Mock ──

type mockLocationTypeRepo struct {
	store *mockStore
}

func (r *mockLocationTypeRepo) Create(_ context.Context, lt *model.LocationType) error {
	r.store.nextLocationTypeID++
	lt.ID = r.store.nextLocationTypeID
	lt.CreatedAt = time.Now()
	lt.UpdatedAt = time.Now()
	cp := *lt
	r.store.locationTypes[lt.ID] = &cp
	return nil
}

func (r *mockLocationTypeRepo) GetByID(_ context.Context, id uint) (*model.LocationType, error) {
	lt, ok := r.store.locationTypes[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *lt
	return &cp, nil
}

func (r *mockLocationTypeRepo) GetByName(_ context.Context, name string) (*model.LocationType, error) {
	for _, lt := range r.store.locationTypes {
		if lt.Name == name {
			cp := *lt
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockLocationTypeRepo) List(_ context.Context) ([]model.LocationType, error) {
	result := make([]model.LocationType, 0, len(r.store.locationTypes))
	for _, lt := range r.store.locationTypes {
		result = append(result, *lt)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *mockLocationTypeRepo) Update(_ context.Context, lt *model.LocationType) error {
	if _, ok := r.store.locationTypes[lt.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	lt.UpdatedAt = time.Now()
	cp := *lt
	r.store.locationTypes[lt.ID] = &cp
	return nil
}

func (r *mockLocationTypeRepo) Delete(_ context.Context, id uint) error {
	for _, loc := range r.store.locations {
		if loc.LocationTypeID == id {
			return fkViolation("fk_locations_location_type")
		}
	}
	delete(r.store.locationTypes, id)
	return nil
}

// ── LocationRepository Mock ──

type mockLocationRepo struct {
	store *mockStore
}

func (r *mockLocationRepo) Create(_ context.Context, loc *model.Location) error {
	if _, ok := r.store.locationTypes[loc.LocationTypeID]; !ok {
		return fkViolation("fk_locations_location_type")
	}
	r.store.nextLocationID++
	loc.ID = r.store.nextLocationID
	loc.CreatedAt = time.Now()
	loc.UpdatedAt = time.Now()
	cp := *loc
	r.store.locations[loc.ID] = &cp
	return nil
}

func (r *mockLocationRepo) CreateWithBarcode(ctx context.Context, loc *model.Location, gen func(id uint) string) error {
	if err := r.Create(ctx, loc); err != nil {
		return err
	}
	barcode := gen(loc.ID)
	loc.Barcode = &barcode
	cp := *loc
	r.store.locations[loc.ID] = &cp
	return nil
}

func (r *mockLocationRepo) GetByID(_ context.Context, id uint) (*model.Location, error) {
	loc, ok := r.store.locations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *loc
	return &cp, nil
}

func (r *mockLocationRepo) GetByBarcode(_ context.Context, barcode string) (*model.Location, error) {
	for _, loc := range r.store.locations {
		if loc.Barcode != nil && *loc.Barcode == barcode {
			cp := *loc
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *mockLocationRepo) List(_ context.Context, locationTypeID *uint) ([]model.Location, error) {
	result := make([]model.Location, 0, len(r.store.locations))
	for _, loc := range r.store.locations {
		if locationTypeID != nil && loc.LocationTypeID != *locationTypeID {
			continue
		}
		result = append(result, *loc)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *mockLocationRepo) Update(_ context.Context, loc *model.Location) error {
	if _, ok := r.store.locations[loc.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if _, ok := r.store.locationTypes[loc.LocationTypeID]; !ok {
		return fkViolation("fk_locations_location_type")
	}
	loc.UpdatedAt = time.Now()
	cp := *loc
	r.store.locations[loc.ID] = &cp
	return nil
}

func (r *mockLocationRepo) Delete(_ context.Context, id uint) error {
	for _, lw := range r.store.labwares {
		if lw.LocationID == id {
			return fkViolation("fk_labwares_location")
		}
	}
	delete(r.store.locations, id)
	return nil
}

// ── LabwareRepository Mock ──

type mockLabwareRepo struct {
	store *mockStore
}

func (r *mockLabwareRepo) Create(_ context.Context, lw *model.Labware) error {
	if _, ok := r.store.locations[lw.LocationID]; !ok {
		return fkViolation("fk_labwares_location")
	}
	r.store.nextLabwareID++
	lw.ID = r.store.nextLabwareID
	lw.CreatedAt = time.Now()
	lw.UpdatedAt = time.Now()
	cp := *lw
	r.store.labwares[lw.ID] = &cp
	return nil
}

func (r *mockLabwareRepo) GetByID(_ context.Context, id uint) (*model.Labware, error) {
	lw, ok := r.store.labwares[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *lw
	return &cp, nil
}

// GetByBarcode 与真实仓储一致：条码重复时取 id 最大的一条
func (r *mockLabwareRepo) GetByBarcode(_ context.Context, barcode string) (*model.Labware, error) {
	var newest *model.Labware
	for _, lw := range r.store.labwares {
		if lw.Barcode != barcode {
			continue
		}
		if newest == nil || lw.ID > newest.ID {
			newest = lw
		}
	}
	if newest == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *newest
	return &cp, nil
}

func (r *mockLabwareRepo) List(_ context.Context, locationID *uint, offset, limit int) ([]model.Labware, int64, error) {
	all := make([]model.Labware, 0, len(r.store.labwares))
	for _, lw := range r.store.labwares {
		if locationID != nil && lw.LocationID != *locationID {
			continue
		}
		all = append(all, *lw)
	}
	sort.Slice(all, func(i, j int) bool { return all[i].ID < all[j].ID })

	total := int64(len(all))
	if offset >= len(all) {
		return []model.Labware{}, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (r *mockLabwareRepo) ListByLocation(_ context.Context, locationID uint) ([]model.Labware, error) {
	result := make([]model.Labware, 0)
	for _, lw := range r.store.labwares {
		if lw.LocationID == locationID {
			result = append(result, *lw)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *mockLabwareRepo) ListAllWithLocation(_ context.Context) ([]model.Labware, error) {
	result := make([]model.Labware, 0, len(r.store.labwares))
	for _, lw := range r.store.labwares {
		cp := *lw
		if loc, ok := r.store.locations[lw.LocationID]; ok {
			locCp := *loc
			if lt, ok := r.store.locationTypes[loc.LocationTypeID]; ok {
				ltCp := *lt
				locCp.LocationType = &ltCp
			}
			cp.Location = &locCp
		}
		result = append(result, cp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (r *mockLabwareRepo) Update(_ context.Context, lw *model.Labware) error {
	if _, ok := r.store.labwares[lw.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if _, ok := r.store.locations[lw.LocationID]; !ok {
		return fkViolation("fk_labwares_location")
	}
	lw.UpdatedAt = time.Now()
	cp := *lw
	r.store.labwares[lw.ID] = &cp
	return nil
}

func (r *mockLabwareRepo) Delete(_ context.Context, id uint) error {
	delete(r.store.labwares, id)
	return nil
}

// ── ScanRepository Mock ──

type mockScanRepo struct {
	store *mockStore
}

func (r *mockScanRepo) Create(_ context.Context, scan *model.Scan) error {
	if _, ok := r.store.locations[scan.LocationID]; !ok {
		return fkViolation("fk_scans_location")
	}
	r.store.nextScanID++
	scan.ID = r.store.nextScanID
	scan.CreatedAt = time.Now()
	cp := *scan
	r.store.scans[scan.ID] = &cp
	return nil
}

// [自证通过] internal/service/mock_repos_test.go
