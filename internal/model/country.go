package model

import "github.com/uptrace/bun"

type Country struct {
	bun.BaseModel `bun:"table:countries,alias:co"`

	ID      int    `bun:"id,pk" json:"id" yaml:"id" validate:"required,gt=0"`
	Name    string `bun:"name" json:"name" yaml:"name"`
	FlagURL string `bun:"flag_url" json:"flag_url" yaml:"flag_url"`
}
