package model

import (
	"github.com/google/uuid"
)

// Member is the wire shape: Teams is the aggregated display string
// ("Oncology, Surgery"), composed at read time from team membership.
type Member struct {
	Base
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Teams    string `json:"teams"`

	TeamIDs []uuid.UUID `json:"-"`
}

type CreateMemberRequest struct {
	FullName string   `json:"fullName"`
	Email    string   `json:"email"`
	TeamIDs  []string `json:"teamIds"`
}
