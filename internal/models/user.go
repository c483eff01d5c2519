package models

import (
	"strconv"
	"time"
)

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleMentor  UserRole = "mentor"
)

func (r UserRole) IsValid() bool {
	return r == RoleStudent || r == RoleMentor
}

// User is the identity row shared by both roles. FirebaseUID and Email are
// opaque values issued by the identity provider.
type User struct {
	ID          uint      `json:"-" gorm:"primaryKey"`
	FirebaseUID string    `json:"firebaseUid" gorm:"column:firebase_uid;size:128;not null;uniqueIndex"`
	Email       string    `json:"email" gorm:"size:255;not null;uniqueIndex"`
	Role        UserRole  `json:"role" gorm:"size:20;not null;index"`
	CreatedAt   time.Time `json:"createdAt"`

	StudentDetails  *StudentDetails  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	StudentSubjects []StudentSubject `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	MentorDetails   *MentorDetails   `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	MentorSubjects  []MentorSubject  `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SocialLink      *SocialLink      `json:"-" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

// FormatID renders a numeric primary key the way the API exposes ids.
func FormatID(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// ParseID is the inverse of FormatID. It returns 0 for anything that is not a
// positive integer.
func ParseID(s string) uint {
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0
	}
	return uint(n)
}

// DisplayName returns the role-specific full name when it has been loaded.
func (u *User) DisplayName() string {
	switch {
	case u.StudentDetails != nil:
		return u.StudentDetails.FullName
	case u.MentorDetails != nil:
		return u.MentorDetails.FullName
	default:
		return u.Email
	}
}

// All lists every persisted model in dependency order for AutoMigrate.
func All() []interface{} {
	return []interface{}{
		&User{},
		&StudentDetails{},
		&StudentSubject{},
		&MentorDetails{},
		&MentorSubject{},
		&SocialLink{},
		&Session{},
	}
}
