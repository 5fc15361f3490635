package invoicefile

import (
	"time"

	"github.com/google/uuid"

	"github.com/MrJamesThe3rd/billingfiles/internal/invoicefile"
)

type acceptedResponse struct {
	RequestID uuid.UUID `json:"requestId"`
}

type fileResponse struct {
	ID             uuid.UUID          `json:"id"`
	MunicipalityID string             `json:"municipalityId"`
	Name           string             `json:"name"`
	Type           string             `json:"type"`
	Encoding       string             `json:"encoding"`
	Status         invoicefile.Status `json:"status"`
	Size           int                `json:"size"`
	Created        time.Time          `json:"created"`
	Sent           *time.Time         `json:"sent,omitempty"`
}

func toResponse(f *invoicefile.File) fileResponse {
	return fileResponse{
		ID:             f.ID,
		MunicipalityID: f.MunicipalityID,
		Name:           f.Name,
		Type:           f.Type,
		Encoding:       f.Encoding,
		Status:         f.Status,
		Size:           len(f.Content),
		Created:        f.Created,
		Sent:           f.Sent,
	}
}

func toResponseList(files []*invoicefile.File) []fileResponse {
	resp := make([]fileResponse, len(files))
	for i, f := range files {
		resp[i] = toResponse(f)
	}

	return resp
}
