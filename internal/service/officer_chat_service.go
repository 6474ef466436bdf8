package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/asaskevich/govalidator"
	"github.com/nanami9426/officerchat/internal/models"
	"github.com/nanami9426/officerchat/internal/utils"
)

// Error texts are the translation keys shown to clients.
var (
	ErrMustBeOnDuty             = errors.New("mustBeOnDuty")
	ErrMessageNotFound          = errors.New("messageNotFound")
	ErrCannotDeleteMessage      = errors.New("cannotDeleteMessage")
	ErrCanOnlyDeleteOwnMessages = errors.New("canOnlyDeleteOwnMessages")
)

type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

type DutyResolver interface {
	ActiveUnit(ctx context.Context, userID string) (*models.Unit, error)
}

type Notifier interface {
	EmitOfficerChat(ctx context.Context, msg *models.OfficerChatView)
	EmitOfficerChatDeleted(ctx context.Context, id int64)
}

type CreateOfficerChatRequest struct {
	Message string `json:"message" valid:"required~message is required,runelength(1|1000)~message must be between 1 and 1000 characters"`
}

func (r *CreateOfficerChatRequest) Validate() error {
	if _, err := govalidator.ValidateStruct(r); err != nil {
		reason := err.Error()
		for _, msg := range govalidator.ErrorsByField(err) {
			reason = msg
			break
		}
		return &ValidationError{Field: "message", Reason: reason}
	}
	return nil
}

type OfficerChatService struct {
	duty     DutyResolver
	notifier Notifier
}

func NewOfficerChatService(duty DutyResolver, notifier Notifier) *OfficerChatService {
	return &OfficerChatService{duty: duty, notifier: notifier}
}

func (s *OfficerChatService) activeUnit(ctx context.Context, userID string) (*models.Unit, error) {
	unit, err := s.duty.ActiveUnit(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("resolve active unit: %w", err)
	}
	if unit == nil || unit.ID() == "" {
		return nil, ErrMustBeOnDuty
	}
	return unit, nil
}

// List returns the most recent messages, oldest first.
func (s *OfficerChatService) List(ctx context.Context, userID string) ([]*models.OfficerChatView, error) {
	if _, err := s.activeUnit(ctx, userID); err != nil {
		return nil, err
	}

	messages, err := models.ListRecentOfficerChatMessages(ctx, utils.ChatHistoryLimit())
	if err != nil {
		return nil, fmt.Errorf("list officer chat: %w", err)
	}
	out := make([]*models.OfficerChatView, 0, len(messages))
	for _, m := range messages {
		out = append(out, m.View())
	}
	return out, nil
}

func (s *OfficerChatService) Create(ctx context.Context, userID string, req *CreateOfficerChatRequest) (*models.OfficerChatView, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	unit, err := s.activeUnit(ctx, userID)
	if err != nil {
		return nil, err
	}

	creator, err := models.FindOrCreateChatCreator(ctx, unit)
	if err != nil {
		return nil, fmt.Errorf("resolve chat creator: %w", err)
	}
	msg, err := models.CreateOfficerChatMessage(ctx, creator, req.Message)
	if err != nil {
		return nil, fmt.Errorf("create officer chat: %w", err)
	}

	view := msg.View()
	s.notifier.EmitOfficerChat(ctx, view)

	l := utils.LogCtx(ctx)
	l.Info().
		Str("unit_id", unit.ID()).
		Str("unit_kind", string(unit.Kind)).
		Int64("message_id", msg.ID).
		Msg("officer chat message created")
	return view, nil
}

// Delete removes a message written by the caller's current unit. Ownership
// is not transitive between a combined unit and its member officers.
func (s *OfficerChatService) Delete(ctx context.Context, userID string, id int64) (bool, error) {
	unit, err := s.activeUnit(ctx, userID)
	if err != nil {
		return false, err
	}

	msg, err := models.GetOfficerChatMessage(ctx, id)
	if err != nil {
		if errors.Is(err, models.ErrOfficerChatNotFound) {
			return false, ErrMessageNotFound
		}
		return false, fmt.Errorf("get officer chat: %w", err)
	}

	creatorUnit := msg.CreatorUnit()
	if creatorUnit == nil {
		return false, ErrCannotDeleteMessage
	}
	if !unit.Is(creatorUnit) {
		return false, ErrCanOnlyDeleteOwnMessages
	}

	if err := models.DeleteOfficerChatMessage(ctx, id); err != nil {
		if errors.Is(err, models.ErrOfficerChatNotFound) {
			return false, ErrMessageNotFound
		}
		return false, fmt.Errorf("delete officer chat: %w", err)
	}
	s.notifier.EmitOfficerChatDeleted(ctx, id)

	l := utils.LogCtx(ctx)
	l.Info().
		Str("unit_id", unit.ID()).
		Int64("message_id", id).
		Msg("officer chat message deleted")
	return true, nil
}
