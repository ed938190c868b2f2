package session

import "github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"

// View is the screen the session is on. Exactly one of Overview, List,
// Detail, Edit or Categories.
type View interface {
	view()
}

// Overview is the landing screen; no listing is active.
type Overview struct{}

// List shows the current page of a collection.
type List struct {
	Collection domain.Collection
}

// Detail shows one entity.
type Detail struct {
	Collection domain.Collection
	ID         string
}

// Edit shows the draft of one entity's editable fields.
type Edit struct {
	Collection domain.Collection
	ID         string
	Draft      domain.EditableFields
}

// Categories shows the ordered category list.
type Categories struct{}

func (Overview) view()   {}
func (List) view()       {}
func (Detail) view()     {}
func (Edit) view()       {}
func (Categories) view() {}
