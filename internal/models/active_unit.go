package models

import (
	"context"
	"errors"

	"github.com/nanami9426/officerchat/internal/utils"
	"gorm.io/gorm"
)

func withOfficerTree(db *gorm.DB, prefix string) *gorm.DB {
	return db.
		Preload(prefix + "Department").
		Preload(prefix + "Divisions").
		Preload(prefix + "Rank").
		Preload(prefix + "Status")
}

// GetActiveUnitForUser finds the unit the user is currently on duty as. A
// combined unit containing one of the user's officers takes precedence over
// the officer itself. Returns nil, nil when the user is off duty.
func GetActiveUnitForUser(ctx context.Context, userID string) (*Unit, error) {
	db := utils.DB.WithContext(ctx)
	onDuty := db.Model(&UnitStatus{}).
		Select("id").
		Where("should_do <> ?", ShouldDoSetOffDuty)
	userOfficers := db.Model(&Officer{}).
		Select("id").
		Where("user_id = ?", userID)
	memberOf := db.Table("combined_unit_officer").
		Select("combined_unit_id").
		Where("officer_id IN (?)", userOfficers)

	var combined CombinedUnit
	err := withOfficerTree(db.Preload("Status"), "Officers.").
		Where("id IN (?) AND status_id IN (?)", memberOf, onDuty).
		Order("updated_at DESC").
		First(&combined).Error
	if err == nil {
		return CombinedUnitOf(&combined), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var officer Officer
	err = withOfficerTree(db, "").
		Where("user_id = ? AND status_id IN (?)", userID, onDuty).
		Order("updated_at DESC").
		First(&officer).Error
	if err == nil {
		return OfficerUnit(&officer), nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return nil, err
}
