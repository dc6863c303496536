package logging

// Structured field keys shared by every component.
const (
	FieldComponent = "component"
	// FieldRunID ties console lines and the run log of one invocation together.
	FieldRunID    = "run_id"
	FieldEntity   = "entity"
	FieldProperty = "property"
	FieldCut      = "cut"
	FieldFile     = "file"

	// FieldEventType classifies a line for filtering (entity_failed, unpaired_reference, ...).
	FieldEventType = "event_type"
	// FieldErrorHint suggests the operator's next step.
	FieldErrorHint = "error_hint"
	// FieldImpact states what the warning costs the run.
	FieldImpact = "impact"

	FieldDecisionType   = "decision_type"
	FieldDecisionResult = "decision_result"
	FieldDecisionReason = "decision_reason"
)
