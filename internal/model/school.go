package model

import "time"

type School struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	District  string    `json:"district"`
	Province  string    `json:"province"`
	Code      string    `json:"code"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
