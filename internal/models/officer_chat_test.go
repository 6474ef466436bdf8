package models_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/nanami9426/officerchat/internal/models"
	"github.com/nanami9426/officerchat/internal/testutil"
	"github.com/nanami9426/officerchat/internal/utils"
)

func TestListRecentOfficerChatMessagesWindowAndOrder(t *testing.T) {
	testutil.SetupDB(t)
	f := testutil.SeedFixture(t)
	ctx := context.Background()

	officer := f.Officer(t, "user-a", "11", f.OnDuty)
	creator, err := models.FindOrCreateChatCreator(ctx, models.OfficerUnit(officer))
	if err != nil {
		t.Fatalf("find or create creator: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 105; i++ {
		msg := &models.OfficerChatMessage{
			ID:        utils.GenerateID(),
			Message:   fmt.Sprintf("msg-%03d", i),
			CreatorID: creator.ID,
		}
		msg.CreatedAt = base.Add(time.Duration(i) * time.Second)
		if err := utils.DB.Create(msg).Error; err != nil {
			t.Fatalf("insert message %d: %v", i, err)
		}
	}

	list, err := models.ListRecentOfficerChatMessages(ctx, 100)
	if err != nil {
		t.Fatalf("list messages: %v", err)
	}
	if len(list) != 100 {
		t.Fatalf("expected 100 messages, got %d", len(list))
	}
	if list[0].Message != "msg-005" {
		t.Fatalf("expected oldest kept message msg-005, got %q", list[0].Message)
	}
	if list[99].Message != "msg-104" {
		t.Fatalf("expected newest message msg-104, got %q", list[99].Message)
	}
	for i := 1; i < len(list); i++ {
		if list[i].CreatedAt.Before(list[i-1].CreatedAt) {
			t.Fatalf("messages out of order at %d", i)
		}
	}
	if unit := list[0].CreatorUnit(); unit == nil || unit.ID() != officer.ID {
		t.Fatalf("expected creator unit %s, got %+v", officer.ID, unit)
	}
}

func TestFindOrCreateChatCreatorReusesRow(t *testing.T) {
	testutil.SetupDB(t)
	f := testutil.SeedFixture(t)
	ctx := context.Background()

	officer := f.Officer(t, "user-a", "11", f.OnDuty)
	combined := f.Combined(t, f.OnDuty, officer)

	first, err := models.FindOrCreateChatCreator(ctx, models.OfficerUnit(officer))
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	second, err := models.FindOrCreateChatCreator(ctx, models.OfficerUnit(officer))
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if first.ID != second.ID {
		t.Fatalf("expected creator %d to be reused, got %d", first.ID, second.ID)
	}

	pair, err := models.FindOrCreateChatCreator(ctx, models.CombinedUnitOf(combined))
	if err != nil {
		t.Fatalf("combined lookup: %v", err)
	}
	if pair.ID == first.ID {
		t.Fatalf("combined unit must not share the officer's creator")
	}
	if pair.CombinedLeoID == nil || *pair.CombinedLeoID != combined.ID {
		t.Fatalf("expected combined creator for %s, got %+v", combined.ID, pair)
	}

	count, err := models.CountChatCreators(ctx)
	if err != nil {
		t.Fatalf("count creators: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 creators, got %d", count)
	}
}

func TestFindOrCreateChatCreatorConcurrentFirstUse(t *testing.T) {
	testutil.SetupDB(t)
	f := testutil.SeedFixture(t)
	ctx := context.Background()
	officer := f.Officer(t, "user-a", "11", f.OnDuty)

	const workers = 8
	ids := make([]int64, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := models.FindOrCreateChatCreator(ctx, models.OfficerUnit(officer))
			errs[i] = err
			if c != nil {
				ids[i] = c.ID
			}
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("worker %d: %v", i, err)
		}
		if ids[i] != ids[0] {
			t.Fatalf("worker %d got creator %d, expected %d", i, ids[i], ids[0])
		}
	}
	count, err := models.CountChatCreators(ctx)
	if err != nil {
		t.Fatalf("count creators: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected exactly 1 creator, got %d", count)
	}
}

func TestFindOrCreateChatCreatorRequiresUnit(t *testing.T) {
	testutil.SetupDB(t)

	_, err := models.FindOrCreateChatCreator(context.Background(), &models.Unit{Kind: models.UnitKindOfficer})
	if !errors.Is(err, models.ErrUnitRequired) {
		t.Fatalf("expected ErrUnitRequired, got %v", err)
	}
}

func TestDeleteOfficerChatMessageMissing(t *testing.T) {
	testutil.SetupDB(t)

	err := models.DeleteOfficerChatMessage(context.Background(), 42)
	if !errors.Is(err, models.ErrOfficerChatNotFound) {
		t.Fatalf("expected ErrOfficerChatNotFound, got %v", err)
	}
	if _, err := models.GetOfficerChatMessage(context.Background(), 42); !errors.Is(err, models.ErrOfficerChatNotFound) {
		t.Fatalf("expected ErrOfficerChatNotFound, got %v", err)
	}
}

func TestOfficerChatViewEncodesCombinedUnit(t *testing.T) {
	testutil.SetupDB(t)
	f := testutil.SeedFixture(t)
	ctx := context.Background()

	a := f.Officer(t, "user-a", "11", f.OnDuty)
	b := f.Officer(t, "user-b", "12", f.OnDuty)
	combined := f.Combined(t, f.OnDuty, a, b)

	creator, err := models.FindOrCreateChatCreator(ctx, models.CombinedUnitOf(combined))
	if err != nil {
		t.Fatalf("creator: %v", err)
	}
	msg, err := models.CreateOfficerChatMessage(ctx, creator, "10-4")
	if err != nil {
		t.Fatalf("create message: %v", err)
	}

	raw, err := json.Marshal(msg.View())
	if err != nil {
		t.Fatalf("marshal view: %v", err)
	}
	var decoded models.OfficerChatView
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal view: %v", err)
	}
	if decoded.ID != msg.ID {
		t.Fatalf("expected id %d, got %d", msg.ID, decoded.ID)
	}
	unit := decoded.Creator.Unit
	if unit == nil || unit.Kind != models.UnitKindCombined {
		t.Fatalf("expected combined unit, got %+v", unit)
	}
	if len(unit.Combined.Officers) != 2 {
		t.Fatalf("expected 2 officers in combined unit, got %d", len(unit.Combined.Officers))
	}
	if unit.Combined.Officers[0].Department == nil {
		t.Fatalf("expected member officer department to be preloaded")
	}
}

func TestGetActiveUnitForUser(t *testing.T) {
	testutil.SetupDB(t)
	f := testutil.SeedFixture(t)
	ctx := context.Background()

	solo := f.Officer(t, "user-solo", "11", f.OnDuty)
	f.Officer(t, "user-off", "12", f.OffDuty)
	f.Officer(t, "user-none", "13", nil)
	paired := f.Officer(t, "user-paired", "14", f.OnDuty)
	other := f.Officer(t, "user-other", "15", f.OnDuty)
	combined := f.Combined(t, f.OnDuty, paired, other)

	unit, err := models.GetActiveUnitForUser(ctx, "user-solo")
	if err != nil {
		t.Fatalf("solo: %v", err)
	}
	if unit == nil || unit.Kind != models.UnitKindOfficer || unit.ID() != solo.ID {
		t.Fatalf("expected officer %s, got %+v", solo.ID, unit)
	}
	if unit.Officer.Department == nil || len(unit.Officer.Divisions) != 1 {
		t.Fatalf("expected department and divisions preloaded, got %+v", unit.Officer)
	}

	for _, userID := range []string{"user-off", "user-none", "user-unknown"} {
		unit, err := models.GetActiveUnitForUser(ctx, userID)
		if err != nil {
			t.Fatalf("%s: %v", userID, err)
		}
		if unit != nil {
			t.Fatalf("%s: expected no active unit, got %+v", userID, unit)
		}
	}

	unit, err = models.GetActiveUnitForUser(ctx, "user-paired")
	if err != nil {
		t.Fatalf("paired: %v", err)
	}
	if unit == nil || unit.Kind != models.UnitKindCombined || unit.ID() != combined.ID {
		t.Fatalf("expected combined unit %s, got %+v", combined.ID, unit)
	}
}
