package chatbox

import (
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/nanami9426/officerchat/internal/models"
)

// CallsignTemplates are the CAD-wide callsign formats.
type CallsignTemplates struct {
	Single string
	Paired string
}

func DefaultCallsignTemplates() CallsignTemplates {
	return CallsignTemplates{
		Single: "{department}{callsign1}-{callsign2}",
		Paired: "{department}{callsign1}-{incremental}",
	}
}

// leadOfficer is the officer whose details stand in for the whole unit.
func leadOfficer(u *models.Unit) *models.Officer {
	if u == nil {
		return nil
	}
	switch u.Kind {
	case models.UnitKindOfficer:
		return u.Officer
	case models.UnitKindCombined:
		if u.Combined != nil && len(u.Combined.Officers) > 0 {
			return &u.Combined.Officers[0]
		}
	}
	return nil
}

// GenerateCallsign fills the paired template for combined units and the single
// template otherwise. A combined unit's own template wins over the CAD one.
func GenerateCallsign(u *models.Unit, templates CallsignTemplates) string {
	if u == nil {
		return ""
	}
	template := templates.Single
	incremental := 0
	if u.Kind == models.UnitKindCombined && u.Combined != nil {
		template = templates.Paired
		if u.Combined.PairedUnitTemplate != "" {
			template = u.Combined.PairedUnitTemplate
		}
		incremental = u.Combined.Incremental
	}

	var department, division, callsign1, callsign2, badge string
	if o := leadOfficer(u); o != nil {
		if o.Department != nil {
			department = o.Department.Callsign
		}
		if len(o.Divisions) > 0 {
			division = o.Divisions[0].Callsign
		}
		callsign1 = o.Callsign
		callsign2 = o.Callsign2
		badge = o.BadgeNumber
		if u.Kind == models.UnitKindOfficer {
			incremental = o.Incremental
		}
	}

	r := strings.NewReplacer(
		"{department}", department,
		"{division}", division,
		"{callsign1}", callsign1,
		"{callsign2}", callsign2,
		"{incremental}", strconv.Itoa(incremental),
		"{badgeNumber}", badge,
	)
	return r.Replace(template)
}

func officerName(o *models.Officer) string {
	return strings.TrimSpace(o.FirstName + " " + o.LastName)
}

func UnitName(u *models.Unit) string {
	if u == nil {
		return ""
	}
	switch u.Kind {
	case models.UnitKindOfficer:
		if u.Officer != nil {
			return officerName(u.Officer)
		}
	case models.UnitKindCombined:
		if u.Combined != nil {
			names := make([]string, 0, len(u.Combined.Officers))
			for i := range u.Combined.Officers {
				names = append(names, officerName(&u.Combined.Officers[i]))
			}
			return strings.Join(names, ", ")
		}
	}
	return ""
}

func UnitDepartment(u *models.Unit) *models.Department {
	if o := leadOfficer(u); o != nil {
		return o.Department
	}
	return nil
}

// DepartmentAbbreviation shortens a multi-word name to its initials, e.g.
// "Los Santos Police Department" -> "LSPD". Single words are kept.
func DepartmentAbbreviation(name string) string {
	words := strings.Fields(name)
	if len(words) < 2 {
		return strings.TrimSpace(name)
	}
	var b strings.Builder
	for _, w := range words {
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
	}
	return b.String()
}

// FormatDivisions lists an officer's division names. Combined units have none.
func FormatDivisions(u *models.Unit) string {
	if u == nil || u.Kind != models.UnitKindOfficer || u.Officer == nil {
		return ""
	}
	names := make([]string, 0, len(u.Officer.Divisions))
	for _, d := range u.Officer.Divisions {
		names = append(names, d.Name)
	}
	return strings.Join(names, ", ")
}

type MessageDetails struct {
	Callsign       string
	Name           string
	DepartmentName string
	DepartmentAbbr string
	Divisions      string
	Rank           string
	Status         string
	Own            bool
	Time           time.Time
	Text           string
}

// Describe derives everything shown for one message. It returns false when
// the creator unit is gone; such messages are not rendered.
func Describe(msg *models.OfficerChatView, viewer *models.Unit, templates CallsignTemplates) (MessageDetails, bool) {
	if msg == nil || msg.Creator.Unit == nil {
		return MessageDetails{}, false
	}
	u := msg.Creator.Unit
	d := MessageDetails{
		Callsign: GenerateCallsign(u, templates),
		Name:     UnitName(u),
		Own:      viewer.Is(u),
		Time:     msg.CreatedAt,
		Text:     msg.Message,
	}
	if dep := UnitDepartment(u); dep != nil {
		d.DepartmentName = dep.Name
		d.DepartmentAbbr = DepartmentAbbreviation(dep.Name)
	}
	if u.Kind == models.UnitKindOfficer && u.Officer != nil {
		d.Divisions = FormatDivisions(u)
		if u.Officer.Rank != nil {
			d.Rank = u.Officer.Rank.Name
		}
	}
	if s := u.Status(); s != nil {
		d.Status = s.Name
	}
	return d, true
}

func (d MessageDetails) Header() string {
	return strings.TrimSpace(d.Callsign + " " + d.Name + " (" + d.DepartmentAbbr + ")")
}

// HoverLines are the extra details shown for other units' messages.
func (d MessageDetails) HoverLines() []string {
	if d.Own {
		return nil
	}
	var lines []string
	switch {
	case d.DepartmentAbbr != "" && d.DepartmentName != d.DepartmentAbbr:
		lines = append(lines, "Department: "+d.DepartmentAbbr+" ("+d.DepartmentName+")")
	case d.DepartmentAbbr != "":
		lines = append(lines, "Department: "+d.DepartmentAbbr)
	case d.DepartmentName != "":
		lines = append(lines, "Department: "+d.DepartmentName)
	}
	if d.Divisions != "" {
		lines = append(lines, "Division: "+d.Divisions)
	}
	if d.Rank != "" {
		lines = append(lines, "Rank: "+d.Rank)
	}
	if d.Status != "" {
		lines = append(lines, "Status: "+d.Status)
	}
	return lines
}
