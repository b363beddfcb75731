package game

import (
	"context"
	"fmt"
	"time"

	"github.com/SlpAus/mini-cup-backend/internal/platform/apperr"
	"github.com/SlpAus/mini-cup-backend/internal/platform/metrics"
	"github.com/SlpAus/mini-cup-backend/internal/platform/validation"
	"github.com/SlpAus/mini-cup-backend/internal/team"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Limiter 是对局提交的频率限制，未启用时为nil
type Limiter interface {
	Acquire(ctx context.Context, ip string, at time.Time) (*PlayCompensator, error)
}

type Service struct {
	db      *gorm.DB
	repo    *Repository
	teams   *team.Repository
	limiter Limiter
	clock   clockwork.Clock
}

// NewService 创建对局服务，limiter 可以为nil，clock 为nil时使用真实时钟
func NewService(db *gorm.DB, repo *Repository, teams *team.Repository, limiter Limiter, clock clockwork.Clock) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{db: db, repo: repo, teams: teams, limiter: limiter, clock: clock}
}

// CreateSession 记录一局游戏。对局写入、队伍进球数累加以及进球事件写入在同一个事务中完成，
// 任一步失败则全部回滚。callerID 非空时覆盖请求中的 user_id。
func (s *Service) CreateSession(ctx context.Context, req CreateSessionRequest, clientIP, callerID string) (*GameSession, error) {
	if req.Score == nil {
		return nil, fmt.Errorf("%w: 缺少score", apperr.ErrValidation)
	}
	score := *req.Score
	if score < 0 {
		return nil, fmt.Errorf("%w: score不能为负数", apperr.ErrValidation)
	}

	now := s.clock.Now().UTC()

	userID := s.resolveUser(req.UserID, callerID)
	if s.limiter == nil {
		return s.record(ctx, req.TeamID, score, userID, now)
	}

	comp, err := s.limiter.Acquire(ctx, clientIP, now)
	if err != nil {
		return nil, err
	}
	defer comp.RollbackUnlessCommitted()

	session, err := s.record(ctx, req.TeamID, score, userID, now)
	if err != nil {
		return nil, err
	}
	// 只有事务提交后才确认计数
	comp.Commit()
	return session, nil
}

func (s *Service) resolveUser(requested *string, callerID string) *string {
	if callerID != "" {
		return &callerID
	}
	if requested != nil && *requested == "" {
		return nil
	}
	return requested
}

func (s *Service) record(ctx context.Context, teamID string, score int, userID *string, now time.Time) (*GameSession, error) {
	var session *GameSession
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		t, err := s.teams.GetIn(tx, teamID)
		if err != nil {
			return err
		}

		sessionID, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("无法生成对局ID: %w", err)
		}
		sess := &GameSession{
			SessionID: sessionID.String(),
			TeamID:    t.TeamID,
			TeamName:  t.Name,
			UserID:    userID,
			Score:     score,
			Timestamp: now,
		}
		if err := validation.Struct(sess); err != nil {
			return err
		}
		if err := s.repo.insertSession(tx, sess); err != nil {
			return err
		}
		if err := s.teams.AddGoals(tx, t.TeamID, score); err != nil {
			return err
		}

		if score > 0 {
			goalID, err := uuid.NewV7()
			if err != nil {
				return fmt.Errorf("无法生成进球ID: %w", err)
			}
			goal := &Goal{
				GoalID:    goalID.String(),
				TeamID:    t.TeamID,
				TeamName:  t.Name,
				Score:     score,
				UserID:    userID,
				Timestamp: now,
			}
			if err := validation.Struct(goal); err != nil {
				return err
			}
			if err := s.repo.insertGoal(tx, goal); err != nil {
				return err
			}
		}
		session = sess
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordSession(score)
	log.Debug().Str("team_id", teamID).Int("score", score).Str("session_id", session.SessionID).Msg("对局已记录")
	return session, nil
}
