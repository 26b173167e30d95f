package models

// Resource is a practitioner or other bookable entity with its own
// calendar. ServiceIDs lists the services the resource is qualified to
// perform; qualification rules themselves are maintained elsewhere.
type Resource struct {
	ID             string   `bson:"id" json:"id"`
	OrganisationID string   `bson:"organisation_id" json:"organisationId"`
	Name           string   `bson:"name" json:"name"`
	SpecialityID   string   `bson:"speciality_id,omitempty" json:"specialityId,omitempty"`
	ServiceIDs     []string `bson:"service_ids" json:"serviceIds"`
	Active         bool     `bson:"active" json:"active"`
}
