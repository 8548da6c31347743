package models

// QuestionItem is one catalog entry: an image with its question and the
// closed set of selectable options. Image names are unique and key the
// per-user answer records.
type QuestionItem struct {
	Image    string   `json:"image"`
	Question string   `json:"question"`
	Options  []string `json:"options"`

	// Questions holds augmented follow-up questions attached by the
	// augment tool. The labeling flow serves only the primary
	// question/options pair; this field is carried so augmented catalog
	// files round-trip intact.
	Questions []SubQuestion `json:"questions,omitempty"`
}

// SubQuestion is a secondary question attached to an item by augmentation.
type SubQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// HasOption reports whether answer is one of the item's selectable options.
func (q QuestionItem) HasOption(answer string) bool {
	for _, opt := range q.Options {
		if opt == answer {
			return true
		}
	}
	return false
}
