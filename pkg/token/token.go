package token

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jonboulle/clockwork"
)

var (
	// ErrInvalid 表示签名错误、算法不符或结构损坏的令牌
	ErrInvalid = errors.New("令牌无效")
	// ErrExpired 表示令牌已超过其内嵌的过期时间
	ErrExpired = errors.New("令牌已过期")
)

// Identity 是签入令牌的身份声明
type Identity struct {
	SubjectID string
	Username  string
	Role      string
}

// claims 定义了JWT载荷的数据结构
type claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager 负责签发和校验令牌。密钥与默认有效期在创建时注入，之后只读。
type Manager struct {
	secret []byte
	ttl    time.Duration
	clock  clockwork.Clock
}

// NewManager 创建令牌管理器，clock 为nil时使用真实时钟
func NewManager(secret []byte, ttl time.Duration, clock clockwork.Clock) (*Manager, error) {
	if len(secret) == 0 {
		return nil, errors.New("签名密钥不能为空")
	}
	if ttl < time.Second {
		return nil, errors.New("令牌有效期不能少于1秒")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	key := make([]byte, len(secret))
	copy(key, secret)
	return &Manager{secret: key, ttl: ttl, clock: clock}, nil
}

// GenerateSecret 生成一个密码学安全的32字节随机密钥。
func GenerateSecret() ([]byte, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("无法生成安全的密钥: %w", err)
	}
	return key, nil
}

// TTL 返回默认有效期
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue 使用默认有效期签发令牌
func (m *Manager) Issue(id Identity) (string, time.Time, error) {
	return m.IssueWithTTL(id, m.ttl)
}

// IssueWithTTL 签发一个在 ttl 之后过期的HS256令牌，返回令牌及其过期时间。
// exp 声明只有秒精度，过期时间向上取整到整秒，返回值与令牌内的 exp 一致。
func (m *Manager) IssueWithTTL(id Identity, ttl time.Duration) (string, time.Time, error) {
	if ttl < time.Second {
		return "", time.Time{}, errors.New("令牌有效期不能少于1秒")
	}
	now := m.clock.Now()
	expiresAt := ceilSecond(now.Add(ttl))

	c := claims{
		Username: id.Username,
		Role:     id.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.SubjectID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("无法签名令牌: %w", err)
	}
	return signed, expiresAt, nil
}

func ceilSecond(t time.Time) time.Time {
	truncated := t.Truncate(time.Second)
	if truncated.Before(t) {
		return truncated.Add(time.Second)
	}
	return truncated
}

// Validate 校验签名与过期时间，成功时返回内嵌的身份声明。
// 当前时间不早于过期时间即视为过期。
func (m *Manager) Validate(tokenString string) (Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.clock.Now),
	)

	var c claims
	_, err := parser.ParseWithClaims(tokenString, &c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Identity{}, ErrExpired
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if c.Subject == "" {
		return Identity{}, fmt.Errorf("%w: 缺少subject", ErrInvalid)
	}

	return Identity{
		SubjectID: c.Subject,
		Username:  c.Username,
		Role:      c.Role,
	}, nil
}
