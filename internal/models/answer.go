package models

// AnswerRecord is one user's selected option for one catalog item. ItemKey
// equals the QuestionItem image name.
type AnswerRecord struct {
	ItemKey string `json:"image"`
	Answer  string `json:"answer"`
}
