// internal/models/location.go
package models

type Municipality struct {
	Name string           `json:"name"`
	Type MunicipalityType `json:"type"`
}

type District struct {
	Name           string         `json:"name"`
	Municipalities []Municipality `json:"municipalities"`
}

type StateData struct {
	Name      string     `json:"name"`
	Code      string     `json:"code"`
	Districts []District `json:"districts"`
}
