package stats

import (
	"math"
	"sort"

	"github.com/SlpAus/mini-cup-backend/internal/country"
	"github.com/SlpAus/mini-cup-backend/internal/game"
	"github.com/SlpAus/mini-cup-backend/internal/team"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	TeamID      string `json:"team_id"`
	TeamName    string `json:"team_name"`
	CountryName string `json:"country_name"`
	Flag        string `json:"flag"`
	Goals       int64  `json:"goals"`
	Color       string `json:"color"`
}

type TeamStats struct {
	TeamID       string  `json:"team_id"`
	TeamName     string  `json:"team_name"`
	CountryName  string  `json:"country_name"`
	TotalGoals   int64   `json:"total_goals"`
	TotalGames   int     `json:"total_games"`
	AverageScore float64 `json:"average_score"`
	BestScore    int     `json:"best_score"`
}

type DailyStats struct {
	Date        string `json:"date"`
	TotalGoals  int    `json:"total_goals"`
	TotalGames  int    `json:"total_games"`
	UniqueTeams int    `json:"unique_teams"`
}

type MonthlyStats struct {
	Month       string `json:"month"`
	TotalGoals  int    `json:"total_goals"`
	TotalGames  int    `json:"total_games"`
	UniqueTeams int    `json:"unique_teams"`
}

// BuildLeaderboard 按进球数降序排列队伍，同分时保持输入顺序（即创建顺序）。
// 名次从1开始连续编号，国家字段取当前国家数据，国家不存在时为空串。
func BuildLeaderboard(teams []team.Team, countries map[string]country.Country) []LeaderboardEntry {
	sorted := make([]team.Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Goals > sorted[j].Goals
	})

	entries := make([]LeaderboardEntry, 0, len(sorted))
	for i, t := range sorted {
		c := countries[t.CountryID]
		entries = append(entries, LeaderboardEntry{
			Rank:        i + 1,
			TeamID:      t.TeamID,
			TeamName:    t.Name,
			CountryName: c.Name,
			Flag:        c.Flag,
			Goals:       t.Goals,
			Color:       t.Color,
		})
	}
	return entries
}

// BuildTeamStats 汇总每支队伍的全部对局。total_goals 直接取队伍上的计数。
func BuildTeamStats(teams []team.Team, countries map[string]country.Country, sessions []game.GameSession) []TeamStats {
	type acc struct {
		games int
		sum   int
		best  int
	}
	byTeam := make(map[string]*acc, len(teams))
	for _, s := range sessions {
		a := byTeam[s.TeamID]
		if a == nil {
			a = &acc{}
			byTeam[s.TeamID] = a
		}
		a.games++
		a.sum += s.Score
		if s.Score > a.best {
			a.best = s.Score
		}
	}

	out := make([]TeamStats, 0, len(teams))
	for _, t := range teams {
		st := TeamStats{
			TeamID:      t.TeamID,
			TeamName:    t.Name,
			CountryName: countries[t.CountryID].Name,
			TotalGoals:  t.Goals,
		}
		if a := byTeam[t.TeamID]; a != nil {
			st.TotalGames = a.games
			st.BestScore = a.best
			st.AverageScore = round2(float64(a.sum) / float64(a.games))
		}
		out = append(out, st)
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

type bucket struct {
	key   string
	goals int
	games int
	teams map[string]struct{}
}

// buckets 按UTC日历键分组，结果按键升序，没有对局的桶不会出现
func buckets(sessions []game.GameSession, layout string) []bucket {
	byKey := make(map[string]*bucket)
	for _, s := range sessions {
		key := s.Timestamp.UTC().Format(layout)
		b := byKey[key]
		if b == nil {
			b = &bucket{key: key, teams: make(map[string]struct{})}
			byKey[key] = b
		}
		b.goals += s.Score
		b.games++
		b.teams[s.TeamID] = struct{}{}
	}

	out := make([]bucket, 0, len(byKey))
	for _, b := range byKey {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].key < out[j].key })
	return out
}

// BuildDaily 按日期汇总对局，调用方负责按时间窗口过滤
func BuildDaily(sessions []game.GameSession) []DailyStats {
	bs := buckets(sessions, dayLayout)
	out := make([]DailyStats, 0, len(bs))
	for _, b := range bs {
		out = append(out, DailyStats{Date: b.key, TotalGoals: b.goals, TotalGames: b.games, UniqueTeams: len(b.teams)})
	}
	return out
}

// BuildMonthly 按月份汇总对局
func BuildMonthly(sessions []game.GameSession) []MonthlyStats {
	bs := buckets(sessions, monthLayout)
	out := make([]MonthlyStats, 0, len(bs))
	for _, b := range bs {
		out = append(out, MonthlyStats{Month: b.key, TotalGoals: b.goals, TotalGames: b.games, UniqueTeams: len(b.teams)})
	}
	return out
}
