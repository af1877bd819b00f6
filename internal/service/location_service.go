package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"labwhere/backend/internal/dto"
	"labwhere/backend/internal/model"
	"labwhere/backend/internal/repository"
	pkgerrors "labwhere/backend/pkg/errors"
	"labwhere/backend/pkg/redis"
)

// ── 存储位置模块业务错误 ──

var (
	ErrLocationNotFound    = errors.New("位置不存在")
	ErrLocationInUse       = errors.New("位置下仍有耗材，无法删除")
	ErrLocationTypeMissing = errors.New("引用的位置类型不存在")
	ErrInvalidLocationName = errors.New("位置名称格式不正确")
)

// 位置名称限 1-60 字符，仅允许字母数字、下划线、连字符、空格和括号
var locationNamePattern = regexp.MustCompile(`^[\w\-\s()]+$`)

// LocationService 存储位置业务接口
type LocationService interface {
	Create(ctx context.Context, req *dto.CreateLocationRequest) (*dto.LocationResponse, error)
	GetByID(ctx context.Context, id uint) (*dto.LocationResponse, error)
	GetByBarcode(ctx context.Context, barcode string) (*dto.LocationResponse, error)
	List(ctx context.Context, req *dto.LocationListRequest) ([]dto.LocationResponse, error)
	ListLabwares(ctx context.Context, id uint) ([]dto.LabwareResponse, error)
	Update(ctx context.Context, id uint, req *dto.UpdateLocationRequest) (*dto.LocationResponse, error)
	Delete(ctx context.Context, id uint) error
}

type locationService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewLocationService 创建 LocationService 实例
func NewLocationService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) LocationService {
	return &locationService{repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── Create ──────────────────────

// Create 创建位置并生成条码
// 条码依赖数据库分配的 id，插入与条码回填在同一事务内完成
func (s *locationService) Create(ctx context.Context, req *dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if !isValidLocationName(req.Name) {
		return nil, ErrInvalidLocationName
	}

	loc := &model.Location{
		Name:           req.Name,
		LocationTypeID: req.LocationTypeID,
	}

	err := s.repo.Location.CreateWithBarcode(ctx, loc, func(id uint) string {
		return generateLocationBarcode(req.Name, id)
	})
	if err != nil {
		if pkgerrors.IsForeignKeyViolation(err) {
			return nil, ErrLocationTypeMissing
		}
		s.logger.Error("创建位置失败", zap.Error(err))
		return nil, err
	}

	return toLocationResponse(loc), nil
}

// ────────────────────── GetByID ──────────────────────

func (s *locationService) GetByID(ctx context.Context, id uint) (*dto.LocationResponse, error) {
	loc, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询位置失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return toLocationResponse(loc), nil
}

// ────────────────────── GetByBarcode ──────────────────────

func (s *locationService) GetByBarcode(ctx context.Context, barcode string) (*dto.LocationResponse, error) {
	loc, err := s.repo.Location.GetByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("按条码查询位置失败", zap.String("barcode", barcode), zap.Error(err))
		return nil, err
	}

	return toLocationResponse(loc), nil
}

// ────────────────────── List ──────────────────────

func (s *locationService) List(ctx context.Context, req *dto.LocationListRequest) ([]dto.LocationResponse, error) {
	locations, err := s.repo.Location.List(ctx, req.LocationTypeID)
	if err != nil {
		s.logger.Error("列出位置失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.LocationResponse, 0, len(locations))
	for i := range locations {
		result = append(result, *toLocationResponse(&locations[i]))
	}

	return result, nil
}

// ────────────────────── ListLabwares ──────────────────────

func (s *locationService) ListLabwares(ctx context.Context, id uint) ([]dto.LabwareResponse, error) {
	if _, err := s.repo.Location.GetByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询位置失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	labwares, err := s.repo.Labware.ListByLocation(ctx, id)
	if err != nil {
		s.logger.Error("列出位置下耗材失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	result := make([]dto.LabwareResponse, 0, len(labwares))
	for i := range labwares {
		result = append(result, *toLabwareResponse(&labwares[i]))
	}

	return result, nil
}

// ────────────────────── Update ──────────────────────

// Update 更新位置；条码在创建时生成后不再变化
func (s *locationService) Update(ctx context.Context, id uint, req *dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	loc, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLocationNotFound
		}
		s.logger.Error("查询位置失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	if req.Name != nil {
		if !isValidLocationName(*req.Name) {
			return nil, ErrInvalidLocationName
		}
		loc.Name = *req.Name
	}
	if req.LocationTypeID != nil {
		loc.LocationTypeID = *req.LocationTypeID
	}

	if err := s.repo.Location.Update(ctx, loc); err != nil {
		if pkgerrors.IsForeignKeyViolation(err) {
			return nil, ErrLocationTypeMissing
		}
		s.logger.Error("更新位置失败", zap.Uint("id", id), zap.Error(err))
		return nil, err
	}

	return toLocationResponse(loc), nil
}

// ────────────────────── Delete ──────────────────────

func (s *locationService) Delete(ctx context.Context, id uint) error {
	loc, err := s.repo.Location.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrLocationNotFound
		}
		s.logger.Error("查询位置失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	if err := s.repo.Location.Delete(ctx, id); err != nil {
		if pkgerrors.IsForeignKeyViolation(err) {
			return ErrLocationInUse
		}
		s.logger.Error("删除位置失败", zap.Uint("id", id), zap.Error(err))
		return err
	}

	// 删除成功后清理条码缓存，避免扫描命中已删除的位置
	if s.rdb != nil && loc.Barcode != nil {
		if err := s.rdb.InvalidateLocation(ctx, *loc.Barcode); err != nil {
			s.logger.Warn("清理位置条码缓存失败", zap.String("barcode", *loc.Barcode), zap.Error(err))
		}
	}

	return nil
}

// ── 内部辅助方法 ──

// isValidLocationName 校验位置名称格式
func isValidLocationName(name string) bool {
	if len(name) < 1 || len(name) > 60 {
		return false
	}
	return locationNamePattern.MatchString(name)
}

// generateLocationBarcode 生成位置条码
// 格式：lw-{名称小写、去首尾空白、空格替换为连字符}-{id}
func generateLocationBarcode(name string, id uint) string {
	sanitized := strings.ReplaceAll(strings.TrimSpace(strings.ToLower(name)), " ", "-")
	return fmt.Sprintf("lw-%s-%d", sanitized, id)
}

func toLocationResponse(loc *model.Location) *dto.LocationResponse {
	resp := &dto.LocationResponse{
		ID:             loc.ID,
		Name:           loc.Name,
		LocationTypeID: loc.LocationTypeID,
		CreatedAt:      loc.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      loc.UpdatedAt.Format(time.RFC3339),
	}
	if loc.Barcode != nil {
		resp.Barcode = *loc.Barcode
	}
	return resp
}

// [自证通过] internal/service/location_service.go
