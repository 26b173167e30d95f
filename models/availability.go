package models

import "time"

// Day-of-week names as persisted, Monday-first to match the
// Monday-anchored week used throughout the scheduler.
const (
	Monday    = "MONDAY"
	Tuesday   = "TUESDAY"
	Wednesday = "WEDNESDAY"
	Thursday  = "THURSDAY"
	Friday    = "FRIDAY"
	Saturday  = "SATURDAY"
	Sunday    = "SUNDAY"
)

// DaysOfWeek lists all weekday names in Monday-first order.
var DaysOfWeek = []string{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

var weekdayNames = map[time.Weekday]string{
	time.Monday:    Monday,
	time.Tuesday:   Tuesday,
	time.Wednesday: Wednesday,
	time.Thursday:  Thursday,
	time.Friday:    Friday,
	time.Saturday:  Saturday,
	time.Sunday:    Sunday,
}

// DayOfWeekFor returns the persisted weekday name for t, evaluated in UTC.
func DayOfWeekFor(t time.Time) string {
	return weekdayNames[t.UTC().Weekday()]
}

// IsDayOfWeek reports whether name is one of the seven persisted weekday names.
func IsDayOfWeek(name string) bool {
	for _, d := range DaysOfWeek {
		if d == name {
			return true
		}
	}
	return false
}

// SlotTime is one interval within a single day, expressed as "HH:MM"
// 24h wall-clock strings. StartTime must sort strictly before EndTime.
type SlotTime struct {
	StartTime   string `bson:"startTime" json:"startTime"`
	EndTime     string `bson:"endTime" json:"endTime"`
	IsAvailable bool   `bson:"isAvailable" json:"isAvailable"`
}

// DaySchedule pairs a weekday with its slots. Used both for base
// templates and for the per-week override entries that replace them.
type DaySchedule struct {
	DayOfWeek string     `bson:"day_of_week" json:"dayOfWeek"`
	Slots     []SlotTime `bson:"slots" json:"slots"`
}

// BaseAvailability is a resource's recurring weekly template for one
// weekday. One document per (organisation, resource, dayOfWeek).
type BaseAvailability struct {
	ID             string     `bson:"id" json:"id"`
	OrganisationID string     `bson:"organisation_id" json:"organisationId"`
	ResourceID     string     `bson:"resource_id" json:"resourceId"`
	DayOfWeek      string     `bson:"day_of_week" json:"dayOfWeek"`
	Slots          []SlotTime `bson:"slots" json:"slots"`
}

// WeeklyOverride replaces base-availability days for one specific week.
// WeekStart is the Monday of that week at 00:00 UTC; one document per
// (organisation, resource, weekStart).
type WeeklyOverride struct {
	ID             string        `bson:"id" json:"id"`
	OrganisationID string        `bson:"organisation_id" json:"organisationId"`
	ResourceID     string        `bson:"resource_id" json:"resourceId"`
	WeekStart      time.Time     `bson:"week_start" json:"weekStart"`
	Days           []DaySchedule `bson:"days" json:"days"`
}

// DayAvailability is the resolver's output for one calendar day.
type DayAvailability struct {
	Date      string     `json:"date"` // "2006-01-02"
	DayOfWeek string     `json:"dayOfWeek"`
	Slots     []SlotTime `json:"slots"`
}
