package model

// Status is a review outcome reported by the homework API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdicts is the closed table of localized review outcomes.
var Verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Verdict returns the verdict text for s.
func (s Status) Verdict() (string, bool) {
	v, ok := Verdicts[s]
	return v, ok
}

// Homework is a single submission record as decoded from the API.
// Fields are kept raw so that absent keys can be told apart from empty values.
type Homework map[string]any

const (
	FieldName   = "homework_name"
	FieldStatus = "status"
)

// Name returns homework_name and whether the key is present.
func (h Homework) Name() (string, bool) {
	return h.stringField(FieldName)
}

// Status returns the status and whether the key is present.
func (h Homework) Status() (Status, bool) {
	s, ok := h.stringField(FieldStatus)
	return Status(s), ok
}

func (h Homework) stringField(key string) (string, bool) {
	v, ok := h[key]
	if !ok || v == nil {
		return "", false
	}
	s, isStr := v.(string)
	if !isStr {
		return "", false
	}
	return s, true
}
