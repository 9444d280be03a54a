package repository

import (
	"errors"

	"gorm.io/gorm"
)

// ErrNotFound 记录不存在（屏蔽 gorm 细节）
var ErrNotFound = errors.New("record not found")

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
