package db

import "gorm.io/gorm"

// Paginate applies LIMIT/OFFSET for 1-based page numbers. A non-positive
// pageSize leaves the query unbounded.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Offset((page - 1) * pageSize).Limit(pageSize)
	}
}

// ContainsFold builds a case-insensitive substring match across columns,
// joined with OR.
func ContainsFold(term string, columns ...string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" || len(columns) == 0 {
			return db
		}
		pattern := "%" + term + "%"
		cond := db.Session(&gorm.Session{NewDB: true})
		for i, col := range columns {
			if i == 0 {
				cond = cond.Where("LOWER("+col+") LIKE LOWER(?)", pattern)
				continue
			}
			cond = cond.Or("LOWER("+col+") LIKE LOWER(?)", pattern)
		}
		return db.Where(cond)
	}
}
