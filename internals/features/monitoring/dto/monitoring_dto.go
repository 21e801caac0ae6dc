package dto

import "dsr_faste_backend/internals/constants"

// MenuItem: satu tampilan monitoring yang boleh dibuka role tertentu.
type MenuItem struct {
	Slug  string           `json:"slug"`
	Judul string           `json:"judul"`
	Roles []constants.Role `json:"roles"`
}

type ViewQuery struct {
	Q string `query:"q" validate:"max=100"`
}
