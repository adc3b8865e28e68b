package model

type Team struct {
	Base
	Name string `json:"name"`
}

type CreateTeamRequest struct {
	Name string `json:"name"`
}
