package models

import (
	"context"
	"errors"
	"time"

	"github.com/nanami9426/officerchat/internal/utils"
	"gorm.io/gorm"
)

var ErrOfficerChatNotFound = errors.New("officer chat message not found")

type OfficerChatMessage struct {
	ID        int64  `gorm:"primarykey;autoIncrement:false"`
	Message   string `gorm:"type:text"`
	CreatorID int64  `gorm:"index"`
	Creator   *ChatCreator
	Basic
}

func (m *OfficerChatMessage) TableName() string {
	return "officer_chat"
}

// CreatorUnit resolves the unit behind the message creator, nil when the
// creator or its unit is gone.
func (m *OfficerChatMessage) CreatorUnit() *Unit {
	return m.Creator.Unit()
}

type ChatCreatorView struct {
	Unit *Unit `json:"unit"`
}

type OfficerChatView struct {
	ID        int64           `json:"id,string"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Message   string          `json:"message"`
	Creator   ChatCreatorView `json:"creator"`
}

func (m *OfficerChatMessage) View() *OfficerChatView {
	return &OfficerChatView{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Message:   m.Message,
		Creator:   ChatCreatorView{Unit: m.CreatorUnit()},
	}
}

func withCreatorTree(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Creator.Officer.Department").
		Preload("Creator.Officer.Divisions").
		Preload("Creator.Officer.Rank").
		Preload("Creator.Officer.Status").
		Preload("Creator.CombinedUnit.Status").
		Preload("Creator.CombinedUnit.Officers.Department").
		Preload("Creator.CombinedUnit.Officers.Divisions").
		Preload("Creator.CombinedUnit.Officers.Rank").
		Preload("Creator.CombinedUnit.Officers.Status")
}

// ListRecentOfficerChatMessages returns the newest limit messages, oldest first.
func ListRecentOfficerChatMessages(ctx context.Context, limit int) ([]*OfficerChatMessage, error) {
	var list []*OfficerChatMessage
	db := withCreatorTree(utils.DB.WithContext(ctx)).
		Order("created_at DESC").
		Order("id DESC")
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&list).Error; err != nil {
		return nil, err
	}
	reverseMessages(list)
	return list, nil
}

func CreateOfficerChatMessage(ctx context.Context, creator *ChatCreator, text string) (*OfficerChatMessage, error) {
	msg := &OfficerChatMessage{
		ID:        utils.GenerateID(),
		Message:   text,
		CreatorID: creator.ID,
	}
	if err := utils.DB.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return GetOfficerChatMessage(ctx, msg.ID)
}

func GetOfficerChatMessage(ctx context.Context, id int64) (*OfficerChatMessage, error) {
	var msg OfficerChatMessage
	err := withCreatorTree(utils.DB.WithContext(ctx)).
		Where("id = ?", id).
		First(&msg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOfficerChatNotFound
		}
		return nil, err
	}
	return &msg, nil
}

func DeleteOfficerChatMessage(ctx context.Context, id int64) error {
	result := utils.DB.WithContext(ctx).
		Where("id = ?", id).
		Delete(&OfficerChatMessage{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrOfficerChatNotFound
	}
	return nil
}

func CountOfficerChatMessages(ctx context.Context) (int64, error) {
	var count int64
	err := utils.DB.WithContext(ctx).Model(&OfficerChatMessage{}).Count(&count).Error
	return count, err
}

func reverseMessages(messages []*OfficerChatMessage) {
	for i, j := 0, len(messages)-1; i < j; i, j = i+1, j-1 {
		messages[i], messages[j] = messages[j], messages[i]
	}
}
