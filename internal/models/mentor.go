package models

import (
	"time"

	"gorm.io/datatypes"
)

type PreferredLanguage string

const (
	LanguageEnglish PreferredLanguage = "English"
	LanguageSinhala PreferredLanguage = "Sinhala"
	LanguageTamil   PreferredLanguage = "Tamil"
	LanguageOther   PreferredLanguage = "Other"
)

func (l PreferredLanguage) IsValid() bool {
	switch l {
	case LanguageEnglish, LanguageSinhala, LanguageTamil, LanguageOther:
		return true
	}
	return false
}

type TeachingExperience string

const (
	ExperienceNone          TeachingExperience = "None"
	ExperienceOneToThree    TeachingExperience = "One_to_Three_Years"
	ExperienceThreeToFive   TeachingExperience = "Three_to_Five_Years"
	ExperienceFivePlusYears TeachingExperience = "Five_Plus_Years"
)

func (e TeachingExperience) IsValid() bool {
	switch e {
	case ExperienceNone, ExperienceOneToThree, ExperienceThreeToFive, ExperienceFivePlusYears:
		return true
	}
	return false
}

type MentorDetails struct {
	UserID            uint              `json:"userId" gorm:"primaryKey;autoIncrement:false"`
	FullName          string            `json:"fullName" gorm:"size:255;not null;index"`
	Age               int               `json:"age" gorm:"not null"`
	ContactNumber     string            `json:"contactNumber" gorm:"size:15;not null"`
	PreferredLanguage PreferredLanguage `json:"preferredLanguage" gorm:"size:20;not null"`
	CurrentLocation   string            `json:"currentLocation" gorm:"size:255;not null"`
	Bio               string            `json:"bio" gorm:"size:500"`
	ProfessionalRole  string            `json:"professionalRole" gorm:"size:255;not null"`
	// HourlyRate is in the marketplace currency's major unit.
	HourlyRate float64   `json:"hourlyRate" gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (MentorDetails) TableName() string {
	return "mentor_details"
}

type MentorSubject struct {
	ID                 uint                        `json:"id" gorm:"primaryKey"`
	UserID             uint                        `json:"userId" gorm:"not null;index"`
	SubjectName        string                      `json:"subjectName" gorm:"size:100;not null;index"`
	TeachingExperience TeachingExperience          `json:"teachingExperience" gorm:"size:30;not null"`
	PreferredLevels    datatypes.JSONSlice[string] `json:"preferredLevels"`
}

func (MentorSubject) TableName() string {
	return "mentor_subjects"
}

type SocialLink struct {
	ID                   uint    `json:"id" gorm:"primaryKey"`
	UserID               uint    `json:"userId" gorm:"not null;uniqueIndex"`
	LinkedinURL          string  `json:"linkedinUrl" gorm:"column:linkedin_url;size:500;not null"`
	GithubOrPortfolioURL *string `json:"githubOrPortfolioUrl" gorm:"column:github_or_portfolio_url;size:500"`
	ProfilePictureURL    *string `json:"profilePictureUrl" gorm:"column:profile_picture_url;size:500"`
}

func (SocialLink) TableName() string {
	return "social_links"
}
