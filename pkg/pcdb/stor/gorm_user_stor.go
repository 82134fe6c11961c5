package stor

import (
	"github.com/hashicorp/go-uuid"
	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type GormUserStor struct {
	db *gorm.DB
}

func NewGormUserStor(db *gorm.DB) *GormUserStor {
	return &GormUserStor{db: db}
}

// CreateUser creates a new user along with their empty profile.
func (s *GormUserStor) CreateUser(user *pcmodel.User) (*pcmodel.User, error) {
	var err error

	if user.UUID, err = uuid.GenerateUUID(); err != nil {
		return nil, err
	}

	err = WithTxRetry(s.db, func(tx *gorm.DB) error {
		if err := tx.Omit("Profile").Create(user).Error; err != nil {
			return err
		}

		return tx.Create(&pcmodel.UserProfile{UserID: user.ID}).Error
	})

	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *GormUserStor) GetUserByID(userID int) (*pcmodel.User, error) {
	var user pcmodel.User
	if err := s.db.Preload("Profile").First(&user, userID).Error; err != nil {
		return nil, notFoundOr(err, "user %d", userID)
	}

	return &user, nil
}

func (s *GormUserStor) GetUserByUsername(username string) (*pcmodel.User, error) {
	var user pcmodel.User
	if err := s.db.Preload("Profile").Where("username = ?", username).First(&user).Error; err != nil {
		return nil, notFoundOr(err, "user %s", username)
	}

	return &user, nil
}

func (s *GormUserStor) GetUserByAPIToken(apitoken string) (*pcmodel.User, error) {
	if apitoken == "" {
		return nil, errors.Wrap(apperr.ErrNotFound, "blank api token")
	}

	var user pcmodel.User
	if err := s.db.Preload("Profile").Where("api_token = ?", apitoken).First(&user).Error; err != nil {
		return nil, notFoundOr(err, "api token")
	}

	return &user, nil
}
