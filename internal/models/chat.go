package models

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

type Recommendation struct {
	Message  string    `json:"message"`
	Products []Product `json:"products"`
}
