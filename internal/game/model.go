package game

import "time"

// GameSession 记录一局游戏，写入后不再修改
type GameSession struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	SessionID string    `gorm:"uniqueIndex;not null;type:varchar(36)" json:"session_id" validate:"required"`
	TeamID    string    `gorm:"index;not null;type:varchar(64)" json:"team_id" validate:"required"`
	TeamName  string    `gorm:"type:varchar(100)" json:"team_name"`
	UserID    *string   `gorm:"type:varchar(36)" json:"user_id"`
	Score     int       `gorm:"not null" json:"score" validate:"gte=0"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

// Goal 是得分大于0的对局派生出的进球事件
type Goal struct {
	ID        uint      `gorm:"primarykey" json:"-"`
	GoalID    string    `gorm:"uniqueIndex;not null;type:varchar(36)" json:"goal_id" validate:"required"`
	TeamID    string    `gorm:"index;not null;type:varchar(64)" json:"team_id" validate:"required"`
	TeamName  string    `gorm:"type:varchar(100)" json:"team_name"`
	Score     int       `gorm:"not null" json:"score" validate:"gt=0"`
	UserID    *string   `gorm:"type:varchar(36)" json:"user_id"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

// CreateSessionRequest 是提交对局结果的请求体
type CreateSessionRequest struct {
	TeamID string  `json:"team_id" binding:"required"`
	Score  *int    `json:"score" binding:"required"`
	UserID *string `json:"user_id"`
}
