// Package db provides database utilities including transaction management and query scopes.
package db

import (
	"gorm.io/gorm"
)

// InDepartment is a GORM scope restricting rows to a single department.
//
// Example usage:
//
//	db.Model(&ComplaintModel{}).Scopes(db.InDepartment(deptID)).Find(&results)
func InDepartment(departmentID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("department_id = ?", departmentID)
	}
}

// ActiveUsers is a GORM scope that filters out deactivated user records.
func ActiveUsers() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_active = ?", true)
	}
}

// AppendOrder orders append-only log rows newest first with row id as the
// stable tiebreaker. "Current assignee" and "most recent history" readings
// rely on this exact ordering.
func AppendOrder() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC")
	}
}
