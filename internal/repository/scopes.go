package repository

import (
	"strings"

	"gorm.io/gorm"
)

// paginate applies page/limit to a query; a zero filter means no limit.
func paginate(filter ListFilter) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if filter.Page <= 0 || filter.PageSize <= 0 {
			return db
		}
		return db.Offset((filter.Page - 1) * filter.PageSize).Limit(filter.PageSize)
	}
}

// nameContains matches rows whose name contains s, case-insensitively, on
// every supported dialect.
func nameContains(table, s string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER("+table+".name) LIKE ?", "%"+strings.ToLower(s)+"%")
	}
}
