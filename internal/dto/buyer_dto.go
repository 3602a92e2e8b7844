package dto

type BuyerResponse struct {
	Identifier int    `json:"Identifier"`
	Name       string `json:"Name"`
}

type MergeBuyersRequest struct {
	SourceIdentifier int `json:"source_identifier" validate:"required"`
	TargetIdentifier int `json:"target_identifier" validate:"required"`
}
