package models

import (
	"encoding/json"
	"time"
)

// Unit records below belong to the host application. This package only reads
// them (and migrates them so a standalone deployment has the tables).

type ShouldDoType string

const (
	ShouldDoSetOffDuty  ShouldDoType = "SET_OFF_DUTY"
	ShouldDoSetOnDuty   ShouldDoType = "SET_ON_DUTY"
	ShouldDoSetAssigned ShouldDoType = "SET_ASSIGNED"
	ShouldDoSetStatus   ShouldDoType = "SET_STATUS"
	ShouldDoPanicButton ShouldDoType = "PANIC_BUTTON"
)

type Department struct {
	ID       string `gorm:"primarykey;size:64" json:"id"`
	Name     string `json:"name"`
	Callsign string `json:"callsign"`
}

func (d *Department) TableName() string {
	return "department"
}

type Division struct {
	ID           string `gorm:"primarykey;size:64" json:"id"`
	DepartmentID string `gorm:"size:64;index" json:"departmentId"`
	Name         string `json:"name"`
	Callsign     string `json:"callsign"`
}

func (d *Division) TableName() string {
	return "division"
}

type Rank struct {
	ID   string `gorm:"primarykey;size:64" json:"id"`
	Name string `json:"name"`
}

func (r *Rank) TableName() string {
	return "rank"
}

type UnitStatus struct {
	ID       string       `gorm:"primarykey;size:64" json:"id"`
	Name     string       `json:"name"`
	ShouldDo ShouldDoType `gorm:"size:32;index" json:"shouldDo"`
	Color    string       `json:"color,omitempty"`
}

func (s *UnitStatus) TableName() string {
	return "unit_status"
}

// OnDuty reports whether a unit carrying this status counts as on duty.
func (s *UnitStatus) OnDuty() bool {
	return s != nil && s.ShouldDo != ShouldDoSetOffDuty
}

type Officer struct {
	ID           string      `gorm:"primarykey;size:64" json:"id"`
	UserID       string      `gorm:"size:64;index" json:"userId"`
	FirstName    string      `json:"firstName"`
	LastName     string      `json:"lastName"`
	Callsign     string      `json:"callsign"`
	Callsign2    string      `json:"callsign2"`
	BadgeNumber  string      `json:"badgeNumber"`
	Incremental  int         `json:"incremental"`
	DepartmentID *string     `gorm:"size:64" json:"departmentId"`
	Department   *Department `json:"department"`
	Divisions    []Division  `gorm:"many2many:officer_division" json:"divisions"`
	RankID       *string     `gorm:"size:64" json:"rankId"`
	Rank         *Rank       `json:"rank"`
	StatusID     *string     `gorm:"size:64" json:"statusId"`
	Status       *UnitStatus `json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

func (o *Officer) TableName() string {
	return "officer"
}

type CombinedUnit struct {
	ID                 string      `gorm:"primarykey;size:64" json:"id"`
	Incremental        int         `json:"incremental"`
	PairedUnitTemplate string      `json:"pairedUnitTemplate,omitempty"`
	StatusID           *string     `gorm:"size:64" json:"statusId"`
	Status             *UnitStatus `json:"status"`
	Officers           []Officer   `gorm:"many2many:combined_unit_officer" json:"officers"`
	CreatedAt          time.Time   `json:"createdAt"`
	UpdatedAt          time.Time   `json:"updatedAt"`
}

func (c *CombinedUnit) TableName() string {
	return "combined_unit"
}

type UnitKind string

const (
	UnitKindOfficer  UnitKind = "officer"
	UnitKindCombined UnitKind = "combined"
)

// Unit is exactly one of an officer or a combined unit.
type Unit struct {
	Kind     UnitKind
	Officer  *Officer
	Combined *CombinedUnit
}

func OfficerUnit(o *Officer) *Unit {
	return &Unit{Kind: UnitKindOfficer, Officer: o}
}

func CombinedUnitOf(c *CombinedUnit) *Unit {
	return &Unit{Kind: UnitKindCombined, Combined: c}
}

func (u *Unit) ID() string {
	if u == nil {
		return ""
	}
	switch u.Kind {
	case UnitKindOfficer:
		if u.Officer != nil {
			return u.Officer.ID
		}
	case UnitKindCombined:
		if u.Combined != nil {
			return u.Combined.ID
		}
	}
	return ""
}

func (u *Unit) Status() *UnitStatus {
	if u == nil {
		return nil
	}
	switch u.Kind {
	case UnitKindOfficer:
		if u.Officer != nil {
			return u.Officer.Status
		}
	case UnitKindCombined:
		if u.Combined != nil {
			return u.Combined.Status
		}
	}
	return nil
}

// Is compares unit identity. A combined unit and its member officers are
// different units.
func (u *Unit) Is(other *Unit) bool {
	if u == nil || other == nil {
		return false
	}
	id := u.ID()
	return id != "" && u.Kind == other.Kind && id == other.ID()
}

func (u Unit) MarshalJSON() ([]byte, error) {
	switch u.Kind {
	case UnitKindOfficer:
		return json.Marshal(u.Officer)
	case UnitKindCombined:
		if u.Combined == nil {
			return []byte("null"), nil
		}
		// clients tell the kinds apart by the officers key, keep it an array
		c := *u.Combined
		if c.Officers == nil {
			c.Officers = []Officer{}
		}
		return json.Marshal(&c)
	default:
		return []byte("null"), nil
	}
}

func (u *Unit) UnmarshalJSON(data []byte) error {
	var probe struct {
		Officers json.RawMessage `json:"officers"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if len(probe.Officers) > 0 && string(probe.Officers) != "null" {
		var c CombinedUnit
		if err := json.Unmarshal(data, &c); err != nil {
			return err
		}
		*u = Unit{Kind: UnitKindCombined, Combined: &c}
		return nil
	}
	var o Officer
	if err := json.Unmarshal(data, &o); err != nil {
		return err
	}
	*u = Unit{Kind: UnitKindOfficer, Officer: &o}
	return nil
}
