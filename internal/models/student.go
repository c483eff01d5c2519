package models

import "time"

type EducationLevel string

const (
	EducationGrade9 EducationLevel = "Grade_9"
	EducationOL     EducationLevel = "O_L"
	EducationAL     EducationLevel = "A_L"
)

func (e EducationLevel) IsValid() bool {
	switch e {
	case EducationGrade9, EducationOL, EducationAL:
		return true
	}
	return false
}

type LearningStyle string

const (
	LearningVisual      LearningStyle = "Visual"
	LearningHandsOn     LearningStyle = "Hands_On"
	LearningTheoretical LearningStyle = "Theoretical"
	LearningMixed       LearningStyle = "Mixed"
)

func (l LearningStyle) IsValid() bool {
	switch l {
	case LearningVisual, LearningHandsOn, LearningTheoretical, LearningMixed:
		return true
	}
	return false
}

type SkillLevel string

const (
	SkillBeginner     SkillLevel = "Beginner"
	SkillIntermediate SkillLevel = "Intermediate"
	SkillAdvanced     SkillLevel = "Advanced"
)

func (s SkillLevel) IsValid() bool {
	switch s {
	case SkillBeginner, SkillIntermediate, SkillAdvanced:
		return true
	}
	return false
}

type StudentDetails struct {
	UserID                 uint           `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	FullName               string         `json:"fullName" gorm:"size:255;not null"`
	Age                    int            `json:"age" gorm:"not null"`
	ContactNumber          string         `json:"contactNumber" gorm:"size:15;not null"`
	EducationLevel         EducationLevel `json:"educationLevel" gorm:"size:20;not null"`
	School                 string         `json:"school" gorm:"size:255;not null"`
	PreferredLearningStyle LearningStyle  `json:"preferredLearningStyle" gorm:"size:20;not null"`
	LearningDisabilities   bool           `json:"learningDisabilities" gorm:"not null;default:false"`
	DisabilityDetails      *string        `json:"disabilityDetails" gorm:"size:500"`
	CreatedAt              time.Time      `json:"createdAt"`
}

func (StudentDetails) TableName() string {
	return "student_details"
}

type StudentSubject struct {
	ID          uint       `json:"id" gorm:"primaryKey"`
	UserID      uint       `json:"userId" gorm:"not null;index"`
	SubjectName string     `json:"subjectName" gorm:"size:100;not null"`
	CurrentYear int        `json:"currentYear" gorm:"not null"`
	SkillLevel  SkillLevel `json:"skillLevel" gorm:"size:20;not null"`
}

func (StudentSubject) TableName() string {
	return "student_subjects"
}
