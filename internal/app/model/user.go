package model

import "time"

type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`                        // 사용자 ID
	Email        string    `gorm:"uniqueIndex;not null;size:255" json:"email"` // 이메일
	PasswordHash string    `gorm:"not null" json:"-"`                          // 비밀번호 해시
	Username     string    `gorm:"not null;size:100" json:"username"`          // 표시 이름
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (User) TableName() string {
	return "users"
}
