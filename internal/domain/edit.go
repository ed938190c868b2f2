package domain

import "strings"

// EditableFields is the only part of an entity that may be changed in place.
type EditableFields struct {
	Price       *float64
	Description string
	Category    string
	Featured    bool
}

// Validate checks the draft as an edit of base before it is sent. A price
// can be changed but not removed.
func (f EditableFields) Validate(base EditableFields) error {
	var errs []FieldError

	if f.Price != nil && *f.Price < 0 {
		errs = append(errs, FieldError{Field: "price", Message: "must be >= 0"})
	}
	if len(f.Description) > 5000 {
		errs = append(errs, FieldError{Field: "description", Message: "too long"})
	}
	if strings.TrimSpace(f.Category) == "" && f.Category != "" {
		errs = append(errs, FieldError{Field: "category", Message: "cannot be blank"})
	}
	if f.Price == nil && base.Price != nil {
		errs = append(errs, FieldError{Field: "price", Message: "cannot be cleared"})
	}

	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// Clone returns a copy that shares no memory with f.
func (f EditableFields) Clone() EditableFields {
	if f.Price != nil {
		p := *f.Price
		f.Price = &p
	}
	return f
}

// Patch holds only the fields that changed. Nil means unchanged.
type Patch struct {
	Price       *float64
	Description *string
	Category    *string
	Featured    *bool
}

// IsEmpty reports whether nothing changed.
func (p Patch) IsEmpty() bool {
	return p.Price == nil && p.Description == nil && p.Category == nil && p.Featured == nil
}

// Diff returns the fields of f that differ from base.
func (f EditableFields) Diff(base EditableFields) Patch {
	var p Patch
	if !samePrice(f.Price, base.Price) && f.Price != nil {
		v := *f.Price
		p.Price = &v
	}
	if f.Description != base.Description {
		v := f.Description
		p.Description = &v
	}
	if f.Category != base.Category {
		v := f.Category
		p.Category = &v
	}
	if f.Featured != base.Featured {
		v := f.Featured
		p.Featured = &v
	}
	return p
}

func samePrice(a, b *float64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
