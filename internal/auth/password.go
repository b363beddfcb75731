package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordHasher 封装bcrypt，Cost 在启动时由配置决定
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher 创建哈希器，cost超出bcrypt允许范围时退回默认值
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash 生成加盐的单向哈希，同一密码每次得到的哈希串可能不同
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("无法生成密码哈希: %w", err)
	}
	return string(hashed), nil
}

// Verify 判断明文是否与哈希匹配。比较在bcrypt内部以恒定时间完成，哈希格式错误时返回false。
func (h *PasswordHasher) Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
