package utils

import (
	"database/sql"
	"errors"
)

// IsSQLNoRowsError 判断查询是否没有命中任何行
func IsSQLNoRowsError(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
