package stor

import (
	"github.com/led-dino/playacamp/pkg/apperr"
	"github.com/led-dino/playacamp/pkg/pcdb/config"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// WithTxRetry runs fn in a transaction, retrying on failure. A domain error
// from fn (a full team, a missing row) ends the retries immediately since
// running fn again would give the same answer.
func WithTxRetry(db *gorm.DB, fn func(tx *gorm.DB) error) error {
	var err error

	for i := 0; i < config.GetTxRetry(); i++ {
		err = db.Transaction(fn)
		if err == nil || apperr.IsDomain(err) {
			break
		}
	}

	return err
}

// notFoundOr turns gorm's missing row error into apperr.ErrNotFound and wraps
// anything else as is.
func notFoundOr(err error, format string, args ...interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrapf(apperr.ErrNotFound, format, args...)
	}

	return errors.Wrapf(err, format, args...)
}

// replaceAssociation sets a many2many association to values, clearing it when
// there are none.
func replaceAssociation(association *gorm.Association, values interface{}, count int) error {
	if count == 0 {
		return association.Clear()
	}

	return association.Replace(values)
}
