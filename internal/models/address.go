package models

type Address struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Label     string `json:"label"`
	Detail    string `json:"detail"`
	Phone     string `json:"phone"`
	IsDefault bool   `json:"is_default"`
}
