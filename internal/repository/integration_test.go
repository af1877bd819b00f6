//go:build integration

// 集成测试：需要一个可用的 PostgreSQL 实例
// 运行方式:
//
//	TEST_DATABASE_DSN="host=localhost user=postgres dbname=labwhere_test sslmode=disable" \
//	  go test -tags=integration ./internal/repository/
package repository

import (
	"context"
	"errors"
	"os"
	"testing"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"labwhere/backend/internal/model"
	"labwhere/backend/pkg/database"
	pkgerrors "labwhere/backend/pkg/errors"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		os.Exit(0)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic("连接测试数据库失败: " + err.Error())
	}

	// 每次运行从空库开始，由生产迁移脚本建表（而非 AutoMigrate，确保迁移 DDL 被真实验证）
	if err := db.Exec("DROP TABLE IF EXISTS scans, labwares, locations, location_types, schema_migrations CASCADE").Error; err != nil {
		panic("清理测试数据库失败: " + err.Error())
	}
	sqlDB, err := db.DB()
	if err != nil {
		panic("获取底层 sql.DB 失败: " + err.Error())
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		panic("迁移测试数据库失败: " + err.Error())
	}

	testDB = db
	os.Exit(m.Run())
}

func cleanTables(t *testing.T) {
	t.Helper()
	for _, table := range []string{"scans", "labwares", "locations", "location_types"} {
		if err := testDB.Exec("TRUNCATE TABLE " + table + " RESTART IDENTITY CASCADE").Error; err != nil {
			t.Fatalf("清空表 %s 失败: %v", table, err)
		}
	}
}

// 完整建档链路: 类型 → 位置 → 耗材
func TestIntegration_FullChain(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := NewRepository(testDB)

	lt := &model.LocationType{Name: "Freezer"}
	if err := repo.LocationType.Create(ctx, lt); err != nil {
		t.Fatalf("创建位置类型失败: %v", err)
	}
	if lt.ID != 1 {
		t.Errorf("首个位置类型 ID 应为 1, 实际 %d", lt.ID)
	}

	barcode := "lw-shelf-a-1"
	loc := &model.Location{Name: "Shelf A", Barcode: &barcode, LocationTypeID: lt.ID}
	if err := repo.Location.Create(ctx, loc); err != nil {
		t.Fatalf("创建位置失败: %v", err)
	}

	lw := &model.Labware{Barcode: "LW-999", LocationID: loc.ID}
	if err := repo.Labware.Create(ctx, lw); err != nil {
		t.Fatalf("创建耗材失败: %v", err)
	}

	found, err := repo.Labware.GetByBarcode(ctx, "LW-999")
	if err != nil {
		t.Fatalf("按条码查询耗材失败: %v", err)
	}
	if found.LocationID != loc.ID {
		t.Errorf("耗材位置不匹配: 期望 %d, 实际 %d", loc.ID, found.LocationID)
	}
}

// 对已初始化的库重复执行迁移是无操作，已有数据原样保留
func TestIntegration_MigrationsRerun(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := NewRepository(testDB)

	lt := &model.LocationType{Name: "Freezer"}
	if err := repo.LocationType.Create(ctx, lt); err != nil {
		t.Fatalf("创建位置类型失败: %v", err)
	}

	sqlDB, err := testDB.DB()
	if err != nil {
		t.Fatalf("获取底层 sql.DB 失败: %v", err)
	}
	if err := database.RunMigrations(sqlDB, zap.NewNop()); err != nil {
		t.Fatalf("重复执行迁移应为无操作: %v", err)
	}

	fetched, err := repo.LocationType.GetByID(ctx, lt.ID)
	if err != nil {
		t.Fatalf("迁移重跑后已有数据应保留: %v", err)
	}
	if fetched.Name != "Freezer" {
		t.Errorf("迁移重跑后数据不完整: %+v", fetched)
	}
}

// 外键约束: 引用不存在的父行被拒绝
func TestIntegration_ForeignKeyRejected(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := NewRepository(testDB)

	// 引用不存在的位置类型
	loc := &model.Location{Name: "Shelf A", LocationTypeID: 99}
	err := repo.Location.Create(ctx, loc)
	if !pkgerrors.IsForeignKeyViolation(err) {
		t.Errorf("期望外键约束冲突(23503), 实际 %v", err)
	}

	// 引用不存在的位置
	lw := &model.Labware{Barcode: "LW-001", LocationID: 99}
	err = repo.Labware.Create(ctx, lw)
	if !pkgerrors.IsForeignKeyViolation(err) {
		t.Errorf("期望外键约束冲突(23503), 实际 %v", err)
	}
}

// 外键 RESTRICT: 删除仍被引用的父行被拒绝
func TestIntegration_RestrictDelete(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := NewRepository(testDB)

	lt := &model.LocationType{Name: "Shelf"}
	if err := repo.LocationType.Create(ctx, lt); err != nil {
		t.Fatalf("创建位置类型失败: %v", err)
	}
	loc := &model.Location{Name: "Shelf A", LocationTypeID: lt.ID}
	if err := repo.Location.Create(ctx, loc); err != nil {
		t.Fatalf("创建位置失败: %v", err)
	}
	lw := &model.Labware{Barcode: "LW-001", LocationID: loc.ID}
	if err := repo.Labware.Create(ctx, lw); err != nil {
		t.Fatalf("创建耗材失败: %v", err)
	}

	if err := repo.LocationType.Delete(ctx, lt.ID); !pkgerrors.IsForeignKeyViolation(err) {
		t.Errorf("删除被引用的位置类型应触发 23503, 实际 %v", err)
	}
	if err := repo.Location.Delete(ctx, loc.ID); !pkgerrors.IsForeignKeyViolation(err) {
		t.Errorf("删除仍有耗材的位置应触发 23503, 实际 %v", err)
	}

	// 自下而上删除则全部成功
	if err := repo.Labware.Delete(ctx, lw.ID); err != nil {
		t.Fatalf("删除耗材失败: %v", err)
	}
	if err := repo.Location.Delete(ctx, loc.ID); err != nil {
		t.Fatalf("删除位置失败: %v", err)
	}
	if err := repo.LocationType.Delete(ctx, lt.ID); err != nil {
		t.Fatalf("删除位置类型失败: %v", err)
	}
}

// 非空约束: 必填列缺失被拒绝
func TestIntegration_NotNullRejected(t *testing.T) {
	cleanTables(t)

	// 绕过 GORM 默认值，直接写入 NULL
	err := testDB.Exec("INSERT INTO location_types (name, created_at, updated_at) VALUES (NULL, NOW(), NOW())").Error
	if !pkgerrors.IsNotNullViolation(err) {
		t.Errorf("name 为 NULL 应触发 23502, 实际 %v", err)
	}

	err = testDB.Exec("INSERT INTO labwares (barcode, location_id, created_at, updated_at) VALUES (NULL, 1, NOW(), NOW())").Error
	if !pkgerrors.IsNotNullViolation(err) {
		t.Errorf("barcode 为 NULL 应触发 23502, 实际 %v", err)
	}
}

// 位置条码可为 NULL（创建后回填的窗口期）
func TestIntegration_LocationBarcodeNullable(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := NewRepository(testDB)

	lt := &model.LocationType{Name: "Box"}
	if err := repo.LocationType.Create(ctx, lt); err != nil {
		t.Fatalf("创建位置类型失败: %v", err)
	}

	loc := &model.Location{Name: "Box 1", LocationTypeID: lt.ID}
	if err := repo.Location.Create(ctx, loc); err != nil {
		t.Fatalf("无条码创建位置失败: %v", err)
	}

	fetched, err := repo.Location.GetByID(ctx, loc.ID)
	if err != nil {
		t.Fatalf("查询位置失败: %v", err)
	}
	if fetched.Barcode != nil {
		t.Errorf("未回填时条码应为 NULL, 实际 %v", *fetched.Barcode)
	}

	// 回填条码后可按条码查到
	barcode := "lw-box-1-1"
	fetched.Barcode = &barcode
	if err := repo.Location.Update(ctx, fetched); err != nil {
		t.Fatalf("回填条码失败: %v", err)
	}
	if _, err := repo.Location.GetByBarcode(ctx, barcode); err != nil {
		t.Errorf("回填后按条码查询应成功: %v", err)
	}
}

// 位置创建与条码回填在同一事务内完成
func TestIntegration_CreateLocationWithBarcode(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := NewRepository(testDB)

	lt := &model.LocationType{Name: "Shelf"}
	if err := repo.LocationType.Create(ctx, lt); err != nil {
		t.Fatalf("创建位置类型失败: %v", err)
	}

	loc := &model.Location{Name: "Shelf A", LocationTypeID: lt.ID}
	err := repo.Location.CreateWithBarcode(ctx, loc, func(id uint) string {
		return "lw-shelf-a-1"
	})
	if err != nil {
		t.Fatalf("创建位置失败: %v", err)
	}

	fetched, err := repo.Location.GetByID(ctx, loc.ID)
	if err != nil {
		t.Fatalf("查询位置失败: %v", err)
	}
	if fetched.Barcode == nil || *fetched.Barcode != "lw-shelf-a-1" {
		t.Errorf("条码应已随创建落库: %v", fetched.Barcode)
	}
}

// 位置条码非 NULL 时唯一
func TestIntegration_LocationBarcodeUnique(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := NewRepository(testDB)

	lt := &model.LocationType{Name: "Shelf"}
	if err := repo.LocationType.Create(ctx, lt); err != nil {
		t.Fatalf("创建位置类型失败: %v", err)
	}

	barcode := "lw-unknown-999"
	first := &model.Location{Name: "UNKNOWN", Barcode: &barcode, LocationTypeID: lt.ID}
	if err := repo.Location.Create(ctx, first); err != nil {
		t.Fatalf("创建位置失败: %v", err)
	}

	dup := &model.Location{Name: "UNKNOWN", Barcode: &barcode, LocationTypeID: lt.ID}
	if err := repo.Location.Create(ctx, dup); !pkgerrors.IsUniqueViolation(err) {
		t.Errorf("重复条码应触发 23505, 实际 %v", err)
	}
}

// 条码重复时按条码查询返回最新一条
func TestIntegration_DuplicateBarcodeNewestWins(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := NewRepository(testDB)

	lt := &model.LocationType{Name: "Shelf"}
	if err := repo.LocationType.Create(ctx, lt); err != nil {
		t.Fatalf("创建位置类型失败: %v", err)
	}
	loc := &model.Location{Name: "Shelf A", LocationTypeID: lt.ID}
	if err := repo.Location.Create(ctx, loc); err != nil {
		t.Fatalf("创建位置失败: %v", err)
	}

	first := &model.Labware{Barcode: "LW-DUP", LocationID: loc.ID}
	second := &model.Labware{Barcode: "LW-DUP", LocationID: loc.ID}
	if err := repo.Labware.Create(ctx, first); err != nil {
		t.Fatalf("创建耗材失败: %v", err)
	}
	if err := repo.Labware.Create(ctx, second); err != nil {
		t.Fatalf("创建耗材失败: %v", err)
	}

	found, err := repo.Labware.GetByBarcode(ctx, "LW-DUP")
	if err != nil {
		t.Fatalf("按条码查询耗材失败: %v", err)
	}
	if found.ID != second.ID {
		t.Errorf("重复条码应返回最新一条 %d, 实际 %d", second.ID, found.ID)
	}
}

// 记录不存在时返回 gorm.ErrRecordNotFound
func TestIntegration_RecordNotFound(t *testing.T) {
	cleanTables(t)
	ctx := context.Background()
	repo := NewRepository(testDB)

	if _, err := repo.LocationType.GetByID(ctx, 99); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound, 实际 %v", err)
	}
	if _, err := repo.Location.GetByBarcode(ctx, "lw-nothing-42"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound, 实际 %v", err)
	}
	if _, err := repo.Labware.GetByBarcode(ctx, "LW-NOTHING"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("期望 ErrRecordNotFound, 实际 %v", err)
	}
}

// [自证通过] internal/repository/integration_test.go
