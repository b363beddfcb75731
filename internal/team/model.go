package team

import "time"

// Team 是参赛队伍。CountryName 和 Flag 是所属国家的冗余副本，
// Goals 是该队全部对局得分之和，只会增加。
type Team struct {
	ID             uint      `gorm:"primarykey" json:"-"`
	TeamID         string    `gorm:"uniqueIndex;not null;type:varchar(64)" json:"team_id" validate:"required,slug,max=64"`
	Name           string    `gorm:"not null;type:varchar(100)" json:"name" validate:"required,max=100"`
	CountryID      string    `gorm:"index;not null;type:varchar(64)" json:"country_id" validate:"required,slug,max=64"`
	CountryName    string    `gorm:"type:varchar(100)" json:"country_name"`
	Flag           string    `gorm:"type:varchar(32)" json:"flag"`
	Color          string    `gorm:"type:varchar(32)" json:"color" validate:"required,max=32"`
	ShirtDesignURL *string   `json:"shirt_design_url"`
	Goals          int64     `gorm:"not null;default:0" json:"goals" validate:"gte=0"`
	CreatedAt      time.Time `json:"created_at"`
}

type CreateRequest struct {
	TeamID         string  `json:"team_id" binding:"required"`
	Name           string  `json:"name" binding:"required"`
	CountryID      string  `json:"country_id" binding:"required"`
	Color          string  `json:"color" binding:"required"`
	ShirtDesignURL *string `json:"shirt_design_url"`
}

// UpdateRequest 只更新非空字段，更换国家时重新写入冗余字段
type UpdateRequest struct {
	Name           *string `json:"name"`
	CountryID      *string `json:"country_id"`
	Color          *string `json:"color"`
	ShirtDesignURL *string `json:"shirt_design_url"`
}

func (r UpdateRequest) empty() bool {
	return r.Name == nil && r.CountryID == nil && r.Color == nil && r.ShirtDesignURL == nil
}
