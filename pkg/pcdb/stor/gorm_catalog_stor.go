package stor

import (
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"gorm.io/gorm"
)

type GormCatalogStor struct {
	db *gorm.DB
}

func NewGormCatalogStor(db *gorm.DB) *GormCatalogStor {
	return &GormCatalogStor{db: db}
}

func (s *GormCatalogStor) CreateSkill(skill *pcmodel.Skill) (*pcmodel.Skill, error) {
	return createEntry(s.db, skill)
}

func (s *GormCatalogStor) CreateFoodRestriction(fr *pcmodel.FoodRestriction) (*pcmodel.FoodRestriction, error) {
	return createEntry(s.db, fr)
}

func (s *GormCatalogStor) CreateJob(job *pcmodel.Job) (*pcmodel.Job, error) {
	return createEntry(s.db, job)
}

func (s *GormCatalogStor) CreateTransportationMethod(tm *pcmodel.TransportationMethod) (*pcmodel.TransportationMethod, error) {
	return createEntry(s.db, tm)
}

func (s *GormCatalogStor) CreateZipcode(zipcode *pcmodel.Zipcode) (*pcmodel.Zipcode, error) {
	return createEntry(s.db, zipcode)
}

func createEntry[T any](db *gorm.DB, entry *T) (*T, error) {
	err := WithTxRetry(db, func(tx *gorm.DB) error {
		return tx.Create(entry).Error
	})

	if err != nil {
		return nil, err
	}

	return entry, nil
}

// GetJobsByIDs returns the jobs that exist among jobIDs.
func (s *GormCatalogStor) GetJobsByIDs(jobIDs []int) ([]pcmodel.Job, error) {
	var jobs []pcmodel.Job
	if len(jobIDs) == 0 {
		return jobs, nil
	}

	err := s.db.Where("id in ?", jobIDs).Order("id").Find(&jobs).Error
	return jobs, err
}

func (s *GormCatalogStor) GetTransportationMethodByID(id int) (*pcmodel.TransportationMethod, error) {
	var tm pcmodel.TransportationMethod
	if err := s.db.First(&tm, id).Error; err != nil {
		return nil, notFoundOr(err, "transportation method %d", id)
	}

	return &tm, nil
}

func (s *GormCatalogStor) GetZipcode(code string) (*pcmodel.Zipcode, error) {
	var zipcode pcmodel.Zipcode
	if err := s.db.Where("code = ?", code).First(&zipcode).Error; err != nil {
		return nil, notFoundOr(err, "zipcode %s", code)
	}

	return &zipcode, nil
}

func (s *GormCatalogStor) ListSkills() ([]pcmodel.Skill, error) {
	return listEntries[pcmodel.Skill](s.db, "name")
}

func (s *GormCatalogStor) ListFoodRestrictions() ([]pcmodel.FoodRestriction, error) {
	return listEntries[pcmodel.FoodRestriction](s.db, "name")
}

func (s *GormCatalogStor) ListJobs() ([]pcmodel.Job, error) {
	return listEntries[pcmodel.Job](s.db, "name")
}

func (s *GormCatalogStor) ListTransportationMethods() ([]pcmodel.TransportationMethod, error) {
	return listEntries[pcmodel.TransportationMethod](s.db, "name")
}

func listEntries[T any](db *gorm.DB, orderBy string) ([]T, error) {
	var entries []T
	err := db.Order(orderBy).Find(&entries).Error
	return entries, err
}
