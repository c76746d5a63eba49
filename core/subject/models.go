package subject

import (
	"io"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/elevate/core"
)

// MaxUploadSize is the largest file accepted by Service.Upload.
const MaxUploadSize = 32 << 20 // 32MB

// KeyPrefix prefixes every object key.
const KeyPrefix = "elevate"

type File struct {
	ID          string    `json:"id" db:"id"`
	Grade       string    `json:"grade" db:"grade"`
	Subject     string    `json:"subject" db:"subject"`
	Filename    string    `json:"filename" db:"filename"`
	ContentType string    `json:"content_type" db:"content_type"`
	Size        int64     `json:"size" db:"size"`
	Link        string    `json:"link" db:"link"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewFile contains the metadata sent along with an uploaded file.
type NewFile struct {
	Grade   string `json:"grade" validate:"required,grade"`
	Subject string `json:"subject" validate:"required,notblank,max=50"`
}

func (nf *NewFile) Validate(validate *validator.Validate) error {
	nf.Grade = core.CleanString(nf.Grade, true /* lower */)
	nf.Subject = core.CleanString(nf.Subject)
	return validate.Struct(nf)
}

// Upload is the binary part of an upload.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type QueryFilter struct {
	Grade   string `query:"grade"`
	Subject string `query:"subject"` // case-insensitive
}

func (qf *QueryFilter) Clean() {
	qf.Grade = core.CleanString(qf.Grade, true /* lower */)
	qf.Subject = core.CleanString(qf.Subject)
}

// OrderingFields are the fields a file listing can be ordered by.
var OrderingFields = []string{"grade", "subject", "filename", "created_at"}
