package invoicefile

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrNotFound             = errors.New("invoice file not found")
	ErrDuplicateName        = errors.New("invoice file name already exists")
	ErrInvalidTransition    = errors.New("invalid invoice file status transition")
	ErrConfigurationMissing = errors.New("invoice file configuration missing")
)

// Status tracks a generated file through transfer.
type Status string

const (
	StatusGenerated      Status = "GENERATED"
	StatusSendSuccessful Status = "SEND_SUCCESSFUL"
	StatusSendFailed     Status = "SEND_FAILED"
)

// CanTransitionTo reports whether a file may move from s to next. Only transfer
// outcomes are valid targets and SEND_SUCCESSFUL is terminal.
func (s Status) CanTransitionTo(next Status) bool {
	switch s {
	case StatusGenerated, StatusSendFailed:
		return next == StatusSendSuccessful || next == StatusSendFailed
	}

	return false
}

// ParseStatus accepts a status name in any letter case.
func ParseStatus(s string) (Status, error) {
	status := Status(strings.ToUpper(strings.TrimSpace(s)))

	switch status {
	case StatusGenerated, StatusSendSuccessful, StatusSendFailed:
		return status, nil
	}

	return "", fmt.Errorf("invalid status %q", s)
}

// ParseStatuses parses a comma separated list of statuses.
func ParseStatuses(list string) ([]Status, error) {
	var statuses []Status

	for _, s := range strings.Split(list, ",") {
		if strings.TrimSpace(s) == "" {
			continue
		}

		status, err := ParseStatus(s)
		if err != nil {
			return nil, err
		}

		statuses = append(statuses, status)
	}

	return statuses, nil
}

// Transferable reports whether a transfer may be attempted for a file in status s.
func (s Status) Transferable() bool {
	return s == StatusGenerated || s == StatusSendFailed
}

// File is a generated flat file.
type File struct {
	ID             uuid.UUID
	MunicipalityID string
	Name           string
	Content        []byte // encoded with Encoding
	Encoding       string
	Type           string
	Status         Status
	Created        time.Time
	Sent           *time.Time
}

// Configuration maps a (type, category) pair to the creator that handles it and to the
// name and charset of the files it produces.
type Configuration struct {
	Type            string
	CategoryTag     string
	CreatorName     string
	FilenamePattern string
	Encoding        string
}

// MissingConfigurationError identifies the lookup that found no configuration.
type MissingConfigurationError struct {
	Type        string
	CategoryTag string
	CreatorName string
}

func (e *MissingConfigurationError) Error() string {
	if e.CreatorName != "" {
		return fmt.Sprintf("no configuration for creator %s", e.CreatorName)
	}

	return fmt.Sprintf("no configuration for type %s / category %s", e.Type, e.CategoryTag)
}

func (e *MissingConfigurationError) Unwrap() error {
	return ErrConfigurationMissing
}
