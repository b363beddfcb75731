package country

import "time"

// Country 是参赛国家，CountryID 是对外使用的业务主键
type Country struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	CountryID string    `gorm:"uniqueIndex;not null;type:varchar(64)" json:"country_id" validate:"required,slug,max=64"`
	Name      string    `gorm:"not null;type:varchar(100)" json:"name" validate:"required,max=100"`
	Flag      string    `gorm:"type:varchar(32)" json:"flag" validate:"required,max=32"`
	Color     string    `gorm:"type:varchar(32)" json:"color" validate:"required,max=32"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateRequest 是新建国家的请求体
type CreateRequest struct {
	CountryID string `json:"country_id" binding:"required"`
	Name      string `json:"name" binding:"required"`
	Flag      string `json:"flag" binding:"required"`
	Color     string `json:"color" binding:"required"`
}

// UpdateRequest 只更新非空字段
type UpdateRequest struct {
	Name  *string `json:"name"`
	Flag  *string `json:"flag"`
	Color *string `json:"color"`
}

func (r UpdateRequest) empty() bool {
	return r.Name == nil && r.Flag == nil && r.Color == nil
}
