package confidence

// Decision tells the caller how to present an AI answer.
type Decision struct {
	DisclaimerRequired  bool `json:"disclaimerRequired"`
	EscalationSuggested bool `json:"escalationSuggested"`
}

// Decide maps a confidence label to its presentation policy: high
// answers render as-is, medium answers carry a disclaimer, low answers
// carry a disclaimer and a tutor escalation prompt.
func Decide(label Label) Decision {
	switch label {
	case LabelHigh:
		return Decision{}
	case LabelMedium:
		return Decision{DisclaimerRequired: true}
	default:
		return Decision{DisclaimerRequired: true, EscalationSuggested: true}
	}
}
