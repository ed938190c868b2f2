package bulk

import (
	"fmt"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/TechPlato-Inc/flowbites-marketplace-sub000/internal/domain"
)

// ConfirmSpec describes the confirmation step shown before a bulk action.
type ConfirmSpec struct {
	Action        domain.Action
	Count         int
	Title         string
	Message       string
	RequireReason bool
	Destructive   bool
	// Skip is true when the action can be sent without asking.
	Skip bool
}

// Confirmation returns the confirmation step for applying action to n items.
func Confirmation(action domain.Action, n int) ConfirmSpec {
	titleCase := cases.Title(language.English)
	noun := "items"
	if n == 1 {
		noun = "item"
	}

	spec := ConfirmSpec{
		Action:        action,
		Count:         n,
		Title:         fmt.Sprintf("%s %d %s?", titleCase.String(action.String()), n, noun),
		RequireReason: action.RequiresReason(),
		Destructive:   action.IsDestructive(),
	}
	spec.Skip = !spec.RequireReason && !spec.Destructive

	switch {
	case spec.RequireReason:
		spec.Message = fmt.Sprintf("A reason is required to %s the selected %s.", action, noun)
	case spec.Destructive:
		spec.Message = fmt.Sprintf("The selected %s will be hidden.", noun)
	default:
		spec.Message = fmt.Sprintf("%s the selected %s.", titleCase.String(action.String()), noun)
	}
	return spec
}
