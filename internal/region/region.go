package region

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("bölge bulunamadı")

// Region is an organizational unit transactions and users are assigned to.
type Region struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}
