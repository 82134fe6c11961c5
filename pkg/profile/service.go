// Package profile manages the profile every user has alongside their account:
// the basics, skills, food restrictions, and admin verification.
package profile

import (
	"errors"

	"github.com/apex/log"
	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/clog"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/led-dino/playacamp/pkg/pcdb/stor"
)

type Service struct {
	profileStor stor.ProfileStor
	catalogStor stor.CatalogStor
}

func NewService(profileStor stor.ProfileStor, catalogStor stor.CatalogStor) *Service {
	return &Service{profileStor: profileStor, catalogStor: catalogStor}
}

func (s *Service) Get(userID int) (*pcmodel.UserProfile, error) {
	return s.profileStor.GetOrCreateProfile(userID)
}

func (s *Service) UpdateBasics(userID int, form BasicsForm) (*pcmodel.UserProfile, error) {
	cleaned, err := form.clean()
	if err != nil {
		return nil, err
	}

	profile, err := s.profileStor.GetOrCreateProfile(userID)
	if err != nil {
		return nil, err
	}

	profile.PlayaName = &cleaned.playaName
	profile.Biography = cleaned.biography
	profile.YearsOnPlaya = cleaned.yearsOnPlaya
	if cleaned.zipcode != nil {
		profile.Zipcode = cleaned.zipcode
	}
	if cleaned.phone != nil {
		profile.PhoneNumber = cleaned.phone
	}

	if err := s.profileStor.UpdateProfileBasics(profile); err != nil {
		return nil, err
	}

	if cleaned.socialLinks != nil {
		if err := s.profileStor.UpdateSocialMediaLinks(userID, cleaned.socialLinks); err != nil {
			return nil, err
		}
	}

	clog.For("profile").WithField("user", userID).Info("updated profile basics")
	return s.profileStor.GetOrCreateProfile(userID)
}

// SetSkills replaces the user's skills. Unknown ids are dropped.
func (s *Service) SetSkills(userID int, skillIDs []int) (*pcmodel.UserProfile, error) {
	if _, err := s.profileStor.GetOrCreateProfile(userID); err != nil {
		return nil, err
	}

	if err := s.profileStor.ReplaceSkills(userID, skillIDs); err != nil {
		return nil, err
	}

	return s.profileStor.GetOrCreateProfile(userID)
}

// SetFoodRestrictions replaces the user's food restrictions. Unknown ids are
// dropped.
func (s *Service) SetFoodRestrictions(userID int, foodRestrictionIDs []int) (*pcmodel.UserProfile, error) {
	if _, err := s.profileStor.GetOrCreateProfile(userID); err != nil {
		return nil, err
	}

	if err := s.profileStor.ReplaceFoodRestrictions(userID, foodRestrictionIDs); err != nil {
		return nil, err
	}

	return s.profileStor.GetOrCreateProfile(userID)
}

// CityAndState looks up the profile's zipcode, returning "" when there is no
// zipcode or it isn't in the table.
func (s *Service) CityAndState(profile *pcmodel.UserProfile) (string, error) {
	if profile.Zipcode == nil || *profile.Zipcode == "" {
		return "", nil
	}

	zipcode, err := s.catalogStor.GetZipcode(*profile.Zipcode)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return "", nil
	case err != nil:
		return "", err
	default:
		return zipcode.CityAndState(), nil
	}
}

func (s *Service) SearchVerified(search string) ([]pcmodel.UserProfile, error) {
	return s.profileStor.SearchVerifiedProfiles(search)
}

func (s *Service) List() ([]pcmodel.UserProfile, error) {
	return s.profileStor.ListProfiles()
}

// SetVerified records an admin's review. nil means not yet reviewed.
func (s *Service) SetVerified(userID int, verified *bool) (*pcmodel.UserProfile, error) {
	if _, err := s.profileStor.GetOrCreateProfile(userID); err != nil {
		return nil, err
	}

	if err := s.profileStor.SetVerified(userID, verified); err != nil {
		return nil, err
	}

	clog.For("profile").WithFields(log.Fields{"user": userID, "verified": verified}).Info("set profile verification")
	return s.profileStor.GetOrCreateProfile(userID)
}

func (s *Service) IsVerified(userID int) (bool, error) {
	profile, err := s.profileStor.GetOrCreateProfile(userID)
	if err != nil {
		return false, err
	}

	return profile.Verified(), nil
}
