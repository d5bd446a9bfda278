package domain

// TurnRequest is the input of one conversational exchange.
type TurnRequest struct {
	UserMessage      string        `json:"userMessage"`
	AvailableContent []ContentInfo `json:"availableContent"`
	SelectedItem     *ContentInfo  `json:"currentSelectedItemInfo,omitempty"`
}

// TurnResult is the structured output of one conversational exchange.
// AIResponse is always present on a well-formed result; the other fields are
// optional side effects the assistant requested through its tools.
type TurnResult struct {
	AIResponse        string        `json:"aiResponse"`
	SelectedContentID string        `json:"selectedContentIdByAi,omitempty"`
	MediaCommand      *MediaCommand `json:"mediaCommandToExecute,omitempty"`
}
