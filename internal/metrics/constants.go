package metrics

// Label names
const (
	LabelMethod = "method"
	LabelPath   = "path"
	LabelStatus = "status"
	LabelType   = "type"
	LabelSkill  = "skill"
	LabelAction = "action"
	LabelSource = "source"
	LabelTitle  = "title"
)

// unmatchedRoute labels requests chi could not route
const unmatchedRoute = "unmatched"

const (
	LogMsgPayloadDecodeFailed = "Event payload could not be decoded"
	LogMsgMetricsRecorded     = "Metrics recorded for event"
)
