package pcmodel

import "fmt"

type UserProfile struct {
	UserID            int               `json:"user_id" gorm:"primaryKey;autoIncrement:false"`
	User              *User             `json:"-" gorm:"foreignKey:UserID"`
	PhoneNumber       *string           `json:"phone_number" gorm:"size:12"`
	Zipcode           *string           `json:"zipcode" gorm:"size:5"`
	Biography         string            `json:"biography"`
	PlayaName         *string           `json:"playa_name" gorm:"size:64"`
	YearsOnPlaya      *int              `json:"years_on_playa"`
	InvitedBy         *string           `json:"invited_by" gorm:"size:64"`
	IsVerifiedByAdmin *bool             `json:"is_verified_by_admin"`
	Skills            []Skill           `json:"skills" gorm:"many2many:user_profile_skills;joinForeignKey:UserProfileID"`
	FoodRestrictions  []FoodRestriction `json:"food_restrictions" gorm:"many2many:user_profile_food_restrictions;joinForeignKey:UserProfileID"`
	SocialMediaLinks  []SocialMediaLink `json:"social_media_links" gorm:"foreignKey:UserProfileID;references:UserID;constraint:OnDelete:CASCADE"`
}

// Verified is false for both "not verified" and "not yet reviewed".
func (p UserProfile) Verified() bool {
	return p.IsVerifiedByAdmin != nil && *p.IsVerifiedByAdmin
}

// FormattedName is the display name: the full name (or username when there is
// no full name) followed by the playa name in parens.
func (p UserProfile) FormattedName() string {
	if p.User == nil {
		return ""
	}

	fullName := p.User.FullName()
	baseName := fullName
	if baseName == "" {
		baseName = p.User.Username
	}

	if p.PlayaName != nil && *p.PlayaName != "" {
		return fmt.Sprintf("%s (%s)", baseName, *p.PlayaName)
	}

	return fullName
}

func (p UserProfile) String() string {
	if p.User == nil {
		return fmt.Sprintf("UserProfile(%d)", p.UserID)
	}
	return p.User.String()
}
