package domain

// Collection names a moderatable resource set exposed by the marketplace API.
type Collection string

const (
	CollectionTemplates   Collection = "templates"
	CollectionCreators    Collection = "creators"
	CollectionRefunds     Collection = "refunds"
	CollectionReviews     Collection = "reviews"
	CollectionReports     Collection = "reports"
	CollectionTickets     Collection = "tickets"
	CollectionWithdrawals Collection = "withdrawals"
	CollectionShots       Collection = "shots"
	CollectionUsers       Collection = "users"
	CollectionCoupons     Collection = "coupons"
	CollectionCategories  Collection = "categories"
)

func (c Collection) String() string { return string(c) }

func (c Collection) IsValid() bool {
	_, ok := collectionSpecs[c]
	return ok
}

// Status is a moderation status. The legal values depend on the collection.
type Status string

const (
	StatusDraft      Status = "draft"
	StatusPending    Status = "pending"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusRequested  Status = "requested"
	StatusProcessed  Status = "processed"
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusDismissed  Status = "dismissed"
	StatusClosed     Status = "closed"
	StatusPublished  Status = "published"
	StatusHidden     Status = "hidden"
	StatusActive     Status = "active"
	StatusSuspended  Status = "suspended"
	StatusExpired    Status = "expired"
)

func (s Status) String() string { return string(s) }

// Action is a moderation command sent for one or many entities.
type Action string

const (
	ActionApprove   Action = "approve"
	ActionReject    Action = "reject"
	ActionFeature   Action = "feature"
	ActionUnfeature Action = "unfeature"
	ActionDelete    Action = "delete"
	ActionResolve   Action = "resolve"
	ActionDismiss   Action = "dismiss"
	ActionProcess   Action = "process"
	ActionClose     Action = "close"
	ActionHide      Action = "hide"
	ActionPublish   Action = "publish"
	ActionSuspend   Action = "suspend"
	ActionActivate  Action = "activate"
)

func (a Action) String() string { return string(a) }

func (a Action) IsValid() bool {
	switch a {
	case ActionApprove, ActionReject, ActionFeature, ActionUnfeature, ActionDelete,
		ActionResolve, ActionDismiss, ActionProcess, ActionClose, ActionHide,
		ActionPublish, ActionSuspend, ActionActivate:
		return true
	}
	return false
}

// RequiresReason reports whether the action must carry a non-empty reason
// collected by a confirmation step before it is sent.
func (a Action) RequiresReason() bool {
	switch a {
	case ActionReject, ActionDelete, ActionSuspend:
		return true
	}
	return false
}

// IsDestructive reports whether the action needs explicit confirmation.
func (a Action) IsDestructive() bool {
	return a.RequiresReason() || a == ActionHide
}
