package models

import (
	"encoding/json"
	"testing"
)

func TestUnitIsComparesKindAndID(t *testing.T) {
	officer := OfficerUnit(&Officer{ID: "u1"})
	sameOfficer := OfficerUnit(&Officer{ID: "u1"})
	otherOfficer := OfficerUnit(&Officer{ID: "u2"})
	combined := CombinedUnitOf(&CombinedUnit{ID: "u1", Officers: []Officer{{ID: "u1"}}})

	if !officer.Is(sameOfficer) {
		t.Fatalf("expected same officer to match")
	}
	if officer.Is(otherOfficer) {
		t.Fatalf("expected different officers not to match")
	}
	if officer.Is(combined) || combined.Is(officer) {
		t.Fatalf("expected officer and combined unit not to match")
	}
	if officer.Is(nil) {
		t.Fatalf("expected nil unit not to match")
	}
	var missing *Unit
	if missing.Is(officer) {
		t.Fatalf("expected nil receiver not to match")
	}
}

func TestUnitJSONDiscriminatesOnOfficers(t *testing.T) {
	for _, u := range []*Unit{
		OfficerUnit(&Officer{ID: "o1", Callsign: "1"}),
		CombinedUnitOf(&CombinedUnit{ID: "c1"}),
	} {
		raw, err := json.Marshal(u)
		if err != nil {
			t.Fatalf("marshal %s: %v", u.Kind, err)
		}
		var decoded Unit
		if err := json.Unmarshal(raw, &decoded); err != nil {
			t.Fatalf("unmarshal %s: %v", u.Kind, err)
		}
		if decoded.Kind != u.Kind || decoded.ID() != u.ID() {
			t.Fatalf("expected %s %s, got %s %s (%s)", u.Kind, u.ID(), decoded.Kind, decoded.ID(), raw)
		}
	}
}

func TestUnitStatusOnDuty(t *testing.T) {
	var none *UnitStatus
	if none.OnDuty() {
		t.Fatalf("expected missing status to be off duty")
	}
	if (&UnitStatus{ShouldDo: ShouldDoSetOffDuty}).OnDuty() {
		t.Fatalf("expected SET_OFF_DUTY to be off duty")
	}
	if !(&UnitStatus{ShouldDo: ShouldDoSetAssigned}).OnDuty() {
		t.Fatalf("expected SET_ASSIGNED to be on duty")
	}
}
