package pcdb

import (
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"gorm.io/gorm"
)

// RunMigrations creates or updates every table the application uses.
func RunMigrations(db *gorm.DB) error {
	return db.AutoMigrate(
		&pcmodel.User{},
		&pcmodel.Skill{},
		&pcmodel.FoodRestriction{},
		&pcmodel.Job{},
		&pcmodel.TransportationMethod{},
		&pcmodel.Zipcode{},
		&pcmodel.UserProfile{},
		&pcmodel.SocialMediaLink{},
		&pcmodel.Team{},
		&pcmodel.TeamMembership{},
		&pcmodel.AttendanceProfile{},
	)
}
