package models

import (
	"context"
	"errors"
	"time"

	"github.com/nanami9426/officerchat/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrUnitRequired = errors.New("unit is required")

// ChatCreator links chat messages to the unit that wrote them. One row per
// unit, shared by all of its messages.
type ChatCreator struct {
	ID            int64         `gorm:"primarykey;autoIncrement:false"`
	OfficerID     *string       `gorm:"size:64;uniqueIndex"`
	Officer       *Officer      `gorm:"constraint:OnDelete:SET NULL"`
	CombinedLeoID *string       `gorm:"size:64;uniqueIndex"`
	CombinedUnit  *CombinedUnit `gorm:"foreignKey:CombinedLeoID;constraint:OnDelete:SET NULL"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (c *ChatCreator) TableName() string {
	return "chat_creator"
}

// Unit returns the officer if set, else the combined unit, else nil.
func (c *ChatCreator) Unit() *Unit {
	if c == nil {
		return nil
	}
	if c.Officer != nil {
		return OfficerUnit(c.Officer)
	}
	if c.CombinedUnit != nil {
		return CombinedUnitOf(c.CombinedUnit)
	}
	return nil
}

func creatorColumn(unit *Unit) (string, string, error) {
	id := unit.ID()
	if id == "" {
		return "", "", ErrUnitRequired
	}
	if unit.Kind == UnitKindCombined {
		return "combined_leo_id", id, nil
	}
	return "officer_id", id, nil
}

// FindOrCreateChatCreator returns the creator row for unit, inserting it on
// first use. The insert ignores unique violations and the row is read back, so
// concurrent first messages from one unit end up sharing a single creator.
func FindOrCreateChatCreator(ctx context.Context, unit *Unit) (*ChatCreator, error) {
	column, id, err := creatorColumn(unit)
	if err != nil {
		return nil, err
	}
	db := utils.DB.WithContext(ctx)

	var creator ChatCreator
	err = db.Where(column+" = ?", id).First(&creator).Error
	if err == nil {
		return &creator, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	candidate := &ChatCreator{ID: utils.GenerateID()}
	if unit.Kind == UnitKindCombined {
		candidate.CombinedLeoID = &id
	} else {
		candidate.OfficerID = &id
	}
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(candidate).Error; err != nil {
		return nil, err
	}

	if err := db.Where(column+" = ?", id).First(&creator).Error; err != nil {
		return nil, err
	}
	return &creator, nil
}

func CountChatCreators(ctx context.Context) (int64, error) {
	var count int64
	err := utils.DB.WithContext(ctx).Model(&ChatCreator{}).Count(&count).Error
	return count, err
}
