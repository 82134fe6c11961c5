package stor

import (
	"strings"

	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"gorm.io/gorm"
)

type GormProfileStor struct {
	db *gorm.DB
}

func NewGormProfileStor(db *gorm.DB) *GormProfileStor {
	return &GormProfileStor{db: db}
}

func (s *GormProfileStor) preloaded(db *gorm.DB) *gorm.DB {
	return db.Preload("User").
		Preload("Skills").
		Preload("FoodRestrictions").
		Preload("SocialMediaLinks", func(db *gorm.DB) *gorm.DB {
			return db.Order("account_type")
		})
}

// GetOrCreateProfile returns the user's profile, creating an empty one for
// users that predate profiles.
func (s *GormProfileStor) GetOrCreateProfile(userID int) (*pcmodel.UserProfile, error) {
	var userCount int64
	if err := s.db.Model(&pcmodel.User{}).Where("id = ?", userID).Count(&userCount).Error; err != nil {
		return nil, err
	}

	if userCount == 0 {
		return nil, notFoundOr(gorm.ErrRecordNotFound, "user %d", userID)
	}

	err := WithTxRetry(s.db, func(tx *gorm.DB) error {
		return tx.Where(pcmodel.UserProfile{UserID: userID}).FirstOrCreate(&pcmodel.UserProfile{}).Error
	})
	if err != nil {
		return nil, err
	}

	var profile pcmodel.UserProfile
	if err := s.preloaded(s.db).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, notFoundOr(err, "profile for user %d", userID)
	}

	return &profile, nil
}

func (s *GormProfileStor) UpdateProfileBasics(profile *pcmodel.UserProfile) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		result := tx.Model(&pcmodel.UserProfile{}).
			Where("user_id = ?", profile.UserID).
			Updates(map[string]interface{}{
				"playa_name":     profile.PlayaName,
				"zipcode":        profile.Zipcode,
				"phone_number":   profile.PhoneNumber,
				"years_on_playa": profile.YearsOnPlaya,
				"biography":      profile.Biography,
			})
		return requireRowAffected(result, "profile for user %d", profile.UserID)
	})
}

// ReplaceSkills sets the profile's skills to the given ids. Ids that don't
// name a skill are ignored.
func (s *GormProfileStor) ReplaceSkills(userID int, skillIDs []int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		var skills []pcmodel.Skill
		if len(skillIDs) != 0 {
			if err := tx.Where("id in ?", skillIDs).Find(&skills).Error; err != nil {
				return err
			}
		}

		return replaceAssociation(tx.Model(&pcmodel.UserProfile{UserID: userID}).Association("Skills"), skills, len(skills))
	})
}

// ReplaceFoodRestrictions works like ReplaceSkills.
func (s *GormProfileStor) ReplaceFoodRestrictions(userID int, foodRestrictionIDs []int) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		var restrictions []pcmodel.FoodRestriction
		if len(foodRestrictionIDs) != 0 {
			if err := tx.Where("id in ?", foodRestrictionIDs).Find(&restrictions).Error; err != nil {
				return err
			}
		}

		return replaceAssociation(tx.Model(&pcmodel.UserProfile{UserID: userID}).Association("FoodRestrictions"),
			restrictions, len(restrictions))
	})
}

// UpdateSocialMediaLinks sets the link for every account type in links.
// Links that already exist are overwritten even with a blank value; a blank
// value for a type the profile has no link for adds nothing.
func (s *GormProfileStor) UpdateSocialMediaLinks(userID int, links map[string]string) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		var existing []pcmodel.SocialMediaLink
		if err := tx.Where("user_profile_id = ?", userID).Find(&existing).Error; err != nil {
			return err
		}

		haveLink := make(map[string]bool, len(existing))
		for _, l := range existing {
			link, ok := links[l.AccountType]
			if !ok {
				continue
			}

			haveLink[l.AccountType] = true
			if err := tx.Model(&pcmodel.SocialMediaLink{}).Where("id = ?", l.ID).Update("link", link).Error; err != nil {
				return err
			}
		}

		for _, choice := range pcmodel.SocialMediaAccountChoices {
			link := links[choice.Value]
			if haveLink[choice.Value] || link == "" {
				continue
			}

			newLink := pcmodel.SocialMediaLink{UserProfileID: userID, AccountType: choice.Value, Link: link}
			if err := tx.Create(&newLink).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (s *GormProfileStor) SetVerified(userID int, verified *bool) error {
	return WithTxRetry(s.db, func(tx *gorm.DB) error {
		result := tx.Model(&pcmodel.UserProfile{}).
			Where("user_id = ?", userID).
			Update("is_verified_by_admin", verified)
		return requireRowAffected(result, "profile for user %d", userID)
	})
}

// SearchVerifiedProfiles returns verified profiles whose playa name, email,
// first name or last name contains search, ordered by lower cased first name.
// A blank search matches every verified profile.
func (s *GormProfileStor) SearchVerifiedProfiles(search string) ([]pcmodel.UserProfile, error) {
	query := s.preloaded(s.db).
		Joins("JOIN users ON users.id = user_profiles.user_id").
		Where("user_profiles.is_verified_by_admin = ?", true)

	if search = strings.TrimSpace(search); search != "" {
		like := containsPattern(search)
		query = query.Where(
			s.db.Where("user_profiles.playa_name LIKE ? ESCAPE '!'", like).
				Or("users.email LIKE ? ESCAPE '!'", like).
				Or("users.first_name LIKE ? ESCAPE '!'", like).
				Or("users.last_name LIKE ? ESCAPE '!'", like))
	}

	var profiles []pcmodel.UserProfile
	err := query.Order("LOWER(users.first_name)").Order("user_profiles.user_id").Find(&profiles).Error
	return profiles, err
}

// likeEscaper makes LIKE wildcards in user input match literally. '!' is the
// escape character because a backslash means something different in MySQL
// and sqlite string literals.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern is a LIKE pattern (used with ESCAPE '!') matching values
// that contain s.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}

func (s *GormProfileStor) ListProfiles() ([]pcmodel.UserProfile, error) {
	var profiles []pcmodel.UserProfile
	err := s.preloaded(s.db).Order("user_id").Find(&profiles).Error
	return profiles, err
}
