// Package seed 写入初始的国家、队伍与默认管理员，可以重复执行。
// 队伍的进球数从0开始，只由对局累加。
package seed

import (
	"context"
	"fmt"

	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/team"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminEnsurer 由 user.Service 实现
type AdminEnsurer interface {
	EnsureAdmin(ctx context.Context, username, email, password string) (bool, error)
}

// Admin 是默认管理员账号
type Admin struct {
	Username string
	Email    string
	Password string
}

var DefaultAdmin = Admin{
	Username: "admin",
	Email:    "admin@minicup.com",
	Password: "admin123",
}

// Result 记录本次实际新增的数量
type Result struct {
	Countries    int64
	Teams        int64
	AdminCreated bool
}

// Run 只插入尚不存在的记录，已有的国家、队伍与管理员保持不变
func Run(ctx context.Context, db *gorm.DB, admins AdminEnsurer, admin Admin) (Result, error) {
	var res Result

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rows := make([]country.Country, 0, len(countries))
		byID := make(map[string]countrySeed, len(countries))
		for _, c := range countries {
			rows = append(rows, country.Country{CountryID: c.id, Name: c.name, Flag: c.flag, Color: c.color})
			byID[c.id] = c
		}
		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "country_id"}},
			DoNothing: true,
		}).Create(&rows)
		if result.Error != nil {
			return fmt.Errorf("写入国家失败: %w", result.Error)
		}
		res.Countries = result.RowsAffected

		teamRows := make([]team.Team, 0, len(teams))
		for _, t := range teams {
			c := byID[t.country]
			teamRows = append(teamRows, team.Team{
				TeamID:      t.id,
				Name:        t.name,
				CountryID:   t.country,
				CountryName: c.name,
				Flag:        c.flag,
				Color:       t.color,
			})
		}
		result = tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "team_id"}},
			DoNothing: true,
		}).Create(&teamRows)
		if result.Error != nil {
			return fmt.Errorf("写入队伍失败: %w", result.Error)
		}
		res.Teams = result.RowsAffected
		return nil
	})
	if err != nil {
		return res, err
	}

	created, err := admins.EnsureAdmin(ctx, admin.Username, admin.Email, admin.Password)
	if err != nil {
		return res, fmt.Errorf("创建管理员失败: %w", err)
	}
	res.AdminCreated = created

	log.Info().
		Int64("countries", res.Countries).
		Int64("teams", res.Teams).
		Bool("admin_created", created).
		Msg("初始数据写入完成")
	return res, nil
}
