// Package testutil sets up an in-memory database with the host unit tables
// for package tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/nanami9426/officerchat/internal/models"
	"github.com/nanami9426/officerchat/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupDB points utils.DB at a fresh migrated SQLite memory database for the
// duration of the test.
func SetupDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	prev := utils.DB
	utils.DB = db
	t.Cleanup(func() {
		utils.DB = prev
		_ = sqlDB.Close()
	})
	return db
}

type Fixture struct {
	OnDuty     *models.UnitStatus
	OffDuty    *models.UnitStatus
	Department *models.Department
	Division   *models.Division
	Rank       *models.Rank
}

func SeedFixture(t *testing.T) *Fixture {
	t.Helper()

	f := &Fixture{
		OnDuty:     &models.UnitStatus{ID: uuid.NewString(), Name: "10-8", ShouldDo: models.ShouldDoSetOnDuty},
		OffDuty:    &models.UnitStatus{ID: uuid.NewString(), Name: "10-7", ShouldDo: models.ShouldDoSetOffDuty},
		Department: &models.Department{ID: uuid.NewString(), Name: "Los Santos Police Department", Callsign: "LSPD"},
		Rank:       &models.Rank{ID: uuid.NewString(), Name: "Sergeant"},
	}
	f.Division = &models.Division{ID: uuid.NewString(), DepartmentID: f.Department.ID, Name: "Patrol", Callsign: "P"}

	for _, v := range []interface{}{f.OnDuty, f.OffDuty, f.Department, f.Rank, f.Division} {
		if err := utils.DB.Create(v).Error; err != nil {
			t.Fatalf("seed fixture: %v", err)
		}
	}
	return f
}

// Officer creates an officer owned by userID. A nil status leaves the officer
// without any status.
func (f *Fixture) Officer(t *testing.T, userID, callsign string, status *models.UnitStatus) *models.Officer {
	t.Helper()

	o := &models.Officer{
		ID:           uuid.NewString(),
		UserID:       userID,
		FirstName:    "Officer",
		LastName:     callsign,
		Callsign:     "1",
		Callsign2:    callsign,
		BadgeNumber:  "100" + callsign,
		DepartmentID: &f.Department.ID,
		RankID:       &f.Rank.ID,
	}
	if status != nil {
		o.StatusID = &status.ID
	}
	if err := utils.DB.Create(o).Error; err != nil {
		t.Fatalf("seed officer: %v", err)
	}
	err := utils.DB.Table("officer_division").Create(map[string]interface{}{
		"officer_id":  o.ID,
		"division_id": f.Division.ID,
	}).Error
	if err != nil {
		t.Fatalf("seed officer division: %v", err)
	}

	o.Department = f.Department
	o.Rank = f.Rank
	o.Status = status
	o.Divisions = []models.Division{*f.Division}
	return o
}

func (f *Fixture) Combined(t *testing.T, status *models.UnitStatus, officers ...*models.Officer) *models.CombinedUnit {
	t.Helper()

	c := &models.CombinedUnit{
		ID:          uuid.NewString(),
		Incremental: 4,
	}
	if status != nil {
		c.StatusID = &status.ID
	}
	if err := utils.DB.Create(c).Error; err != nil {
		t.Fatalf("seed combined unit: %v", err)
	}
	for _, o := range officers {
		err := utils.DB.Table("combined_unit_officer").Create(map[string]interface{}{
			"combined_unit_id": c.ID,
			"officer_id":       o.ID,
		}).Error
		if err != nil {
			t.Fatalf("seed combined unit officer: %v", err)
		}
		c.Officers = append(c.Officers, *o)
	}
	c.Status = status
	return c
}
