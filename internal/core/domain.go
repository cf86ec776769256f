package core

import (
	"errors"
	"strings"
)

type (
	// Money is a fixed-point amount in cents. The unit is currency-agnostic;
	// cents are used for arithmetic to avoid floating-point drift.
	Money struct {
		Cents int64
	}

	// Record is a stored expense record as read back from the record store.
	// Note and Date use "" for absent. Date, when present, is an ISO
	// YYYY-MM-DD string.
	Record struct {
		ID       int64
		Amount   Money
		Category string
		Note     string
		Date     string
	}

	// Input is a validated, storage-ready record. The store assigns the ID
	// on creation.
	Input struct {
		Amount   Money
		Category string
		Note     string
		Date     string
	}
)

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrMissingCategory = errors.New("missing category")
	ErrRecordNotFound  = errors.New("record not found")
)

// OtherCategory is the bucket label used when a record has no category.
const OtherCategory = "Other"

func (m Money) Validate() error {
	if m.Cents <= 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (in Input) Validate() error {
	if err := in.Amount.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(in.Category) == "" {
		return ErrMissingCategory
	}
	return nil
}
