package stats

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/game"
	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/SlpAus/mini-cup-backend/internal/team"
	"github.com/jonboulle/clockwork"
)

const (
	DefaultDays   = 30
	DefaultMonths = 12
	// 一个“月”的窗口按30天计算
	daysPerMonth = 30
)

// Source 是统计所需的只读数据
type Source interface {
	Teams(ctx context.Context) ([]team.Team, error)
	Countries(ctx context.Context) (map[string]country.Country, error)
	// Sessions 返回时间不早于 since 的对局，since 为零值时返回全部
	Sessions(ctx context.Context, since time.Time) ([]game.GameSession, error)
}

type repoSource struct {
	teams     *team.Repository
	countries *country.Repository
	sessions  *game.Repository
}

// NewSource 用各模块的仓库组合出统计数据源
func NewSource(teams *team.Repository, countries *country.Repository, sessions *game.Repository) Source {
	return &repoSource{teams: teams, countries: countries, sessions: sessions}
}

func (s *repoSource) Teams(ctx context.Context) ([]team.Team, error) {
	return s.teams.List(ctx)
}

func (s *repoSource) Countries(ctx context.Context) (map[string]country.Country, error) {
	return s.countries.Lookup(ctx)
}

func (s *repoSource) Sessions(ctx context.Context, since time.Time) ([]game.GameSession, error) {
	return s.sessions.Sessions(ctx, since)
}

// Service 在内存中完成聚合，存储层只负责过滤
type Service struct {
	src   Source
	clock clockwork.Clock
}

func NewService(src Source, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{src: src, clock: clock}
}

func (s *Service) Leaderboard(ctx context.Context) ([]LeaderboardEntry, error) {
	teams, err := s.src.Teams(ctx)
	if err != nil {
		return nil, fmt.Errorf("排行榜: %w", err)
	}
	countries, err := s.src.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("排行榜: %w", err)
	}
	return BuildLeaderboard(teams, countries), nil
}

func (s *Service) TeamStats(ctx context.Context) ([]TeamStats, error) {
	teams, err := s.src.Teams(ctx)
	if err != nil {
		return nil, fmt.Errorf("队伍统计: %w", err)
	}
	countries, err := s.src.Countries(ctx)
	if err != nil {
		return nil, fmt.Errorf("队伍统计: %w", err)
	}
	sessions, err := s.src.Sessions(ctx, time.Time{})
	if err != nil {
		return nil, fmt.Errorf("队伍统计: %w", err)
	}
	return BuildTeamStats(teams, countries, sessions), nil
}

// maxWindowDays 超过该天数的窗口已早于公元1年，等同于不过滤
const maxWindowDays = 800_000

// windowStart 返回 now 往前 days 个日历日的时刻；窗口超出可表示范围时返回零值，表示全部对局
func windowStart(now time.Time, days int) time.Time {
	if days > maxWindowDays {
		return time.Time{}
	}
	since := now.AddDate(0, 0, -days)
	if since.Year() < 1 {
		return time.Time{}
	}
	return since
}

// Daily 汇总最近 days 天（含边界）的对局
func (s *Service) Daily(ctx context.Context, days int) ([]DailyStats, error) {
	if days <= 0 {
		return nil, fmt.Errorf("%w: days必须为正整数", apperr.ErrValidation)
	}
	since := windowStart(s.clock.Now().UTC(), days)
	sessions, err := s.src.Sessions(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("每日统计: %w", err)
	}
	return BuildDaily(sessions), nil
}

// Monthly 汇总最近 months*30 天的对局
func (s *Service) Monthly(ctx context.Context, months int) ([]MonthlyStats, error) {
	if months <= 0 {
		return nil, fmt.Errorf("%w: months必须为正整数", apperr.ErrValidation)
	}
	days := maxWindowDays + 1
	if months <= maxWindowDays/daysPerMonth {
		days = months * daysPerMonth
	}
	since := windowStart(s.clock.Now().UTC(), days)
	sessions, err := s.src.Sessions(ctx, since)
	if err != nil {
		return nil, fmt.Errorf("每月统计: %w", err)
	}
	return BuildMonthly(sessions), nil
}
