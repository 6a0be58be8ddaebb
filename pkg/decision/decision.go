package decision

// Reason records which branch of the precedence chain produced a decision.
type Reason string

const (
	// ReasonWhitelisted: a forced variation decided the outcome.
	ReasonWhitelisted Reason = "whitelisted"
	// ReasonSticky: a saved profile entry decided the outcome.
	ReasonSticky Reason = "sticky"
	// ReasonBucketed: a fresh bucketing decision.
	ReasonBucketed Reason = "bucketed"
	// ReasonNotRunning: the experiment is not running.
	ReasonNotRunning Reason = "not_running"
	// ReasonAudienceMismatch: the user did not definitely match the audiences.
	ReasonAudienceMismatch Reason = "audience_mismatch"
	// ReasonGroupExcluded: the group routed the user to a sibling experiment.
	ReasonGroupExcluded Reason = "group_excluded"
	// ReasonNoTraffic: the user fell outside the traffic allocation.
	ReasonNoTraffic Reason = "no_traffic"
)

// Decision is the outcome of one GetVariation call. The engine never retains
// it; durability, when applicable, goes through the user profile store.
type Decision struct {
	ExperimentID  string
	ExperimentKey string
	VariationID   string
	VariationKey  string
	UserID        string
	Reason        Reason
}

// Assigned reports whether the user received a variation.
func (d Decision) Assigned() bool {
	return d.VariationID != ""
}
