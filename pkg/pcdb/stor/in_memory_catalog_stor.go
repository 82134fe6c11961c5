package stor

import (
	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/pcmodel"
	"github.com/pkg/errors"
)

// InMemoryCatalogStor serves fixed catalog tables. It is read only apart from
// the Create methods, which append.
type InMemoryCatalogStor struct {
	Skills                []pcmodel.Skill
	FoodRestrictions      []pcmodel.FoodRestriction
	Jobs                  []pcmodel.Job
	TransportationMethods []pcmodel.TransportationMethod
	Zipcodes              []pcmodel.Zipcode
}

func NewInMemoryCatalogStor() *InMemoryCatalogStor {
	return &InMemoryCatalogStor{}
}

func (s *InMemoryCatalogStor) CreateSkill(skill *pcmodel.Skill) (*pcmodel.Skill, error) {
	skill.ID = len(s.Skills) + 1
	s.Skills = append(s.Skills, *skill)
	return skill, nil
}

func (s *InMemoryCatalogStor) CreateFoodRestriction(fr *pcmodel.FoodRestriction) (*pcmodel.FoodRestriction, error) {
	fr.ID = len(s.FoodRestrictions) + 1
	s.FoodRestrictions = append(s.FoodRestrictions, *fr)
	return fr, nil
}

func (s *InMemoryCatalogStor) CreateJob(job *pcmodel.Job) (*pcmodel.Job, error) {
	job.ID = len(s.Jobs) + 1
	s.Jobs = append(s.Jobs, *job)
	return job, nil
}

func (s *InMemoryCatalogStor) CreateTransportationMethod(tm *pcmodel.TransportationMethod) (*pcmodel.TransportationMethod, error) {
	tm.ID = len(s.TransportationMethods) + 1
	s.TransportationMethods = append(s.TransportationMethods, *tm)
	return tm, nil
}

func (s *InMemoryCatalogStor) CreateZipcode(zipcode *pcmodel.Zipcode) (*pcmodel.Zipcode, error) {
	s.Zipcodes = append(s.Zipcodes, *zipcode)
	return zipcode, nil
}

func (s *InMemoryCatalogStor) GetJobsByIDs(jobIDs []int) ([]pcmodel.Job, error) {
	var jobs []pcmodel.Job
	for _, job := range s.Jobs {
		for _, id := range jobIDs {
			if job.ID == id {
				jobs = append(jobs, job)
				break
			}
		}
	}
	return jobs, nil
}

func (s *InMemoryCatalogStor) GetTransportationMethodByID(id int) (*pcmodel.TransportationMethod, error) {
	for _, tm := range s.TransportationMethods {
		if tm.ID == id {
			return &tm, nil
		}
	}
	return nil, errors.Wrapf(apperr.ErrNotFound, "transportation method %d", id)
}

func (s *InMemoryCatalogStor) GetZipcode(code string) (*pcmodel.Zipcode, error) {
	for _, z := range s.Zipcodes {
		if z.Code == code {
			return &z, nil
		}
	}
	return nil, errors.Wrapf(apperr.ErrNotFound, "zipcode %s", code)
}

func (s *InMemoryCatalogStor) ListSkills() ([]pcmodel.Skill, error) {
	return s.Skills, nil
}

func (s *InMemoryCatalogStor) ListFoodRestrictions() ([]pcmodel.FoodRestriction, error) {
	return s.FoodRestrictions, nil
}

func (s *InMemoryCatalogStor) ListJobs() ([]pcmodel.Job, error) {
	return s.Jobs, nil
}

func (s *InMemoryCatalogStor) ListTransportationMethods() ([]pcmodel.TransportationMethod, error) {
	return s.TransportationMethods, nil
}
