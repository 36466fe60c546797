package usecase

import (
	"fmt"

	"homework-status-bot/internal/domain"
	"homework-status-bot/internal/domain/model"
)

const (
	keyHomeworks   = "homeworks"
	keyCurrentDate = "current_date"
)

// CheckResponse validates the decoded API body and returns the latest homework.
// An empty homeworks list yields a nil homework and no error.
func CheckResponse(body any) (model.Homework, error) {
	const op = "check response"

	resp, ok := body.(map[string]any)
	if !ok {
		return nil, domain.Malformed(op, "response is %T, want object", body)
	}
	raw, ok := resp[keyHomeworks]
	if !ok {
		return nil, domain.Malformed(op, "key %q not found", keyHomeworks)
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, domain.Malformed(op, "%q is %T, want list", keyHomeworks, raw)
	}
	if len(list) == 0 {
		return nil, nil
	}
	hw, ok := list[0].(map[string]any)
	if !ok {
		return nil, domain.Malformed(op, "homework is %T, want object", list[0])
	}
	return model.Homework(hw), nil
}

// ParseStatus renders the notification text for a homework record.
func ParseStatus(hw model.Homework) (string, error) {
	const op = "parse status"

	name, ok := hw.Name()
	if !ok {
		return "", domain.Malformed(op, "key %q not found", model.FieldName)
	}
	status, ok := hw.Status()
	if !ok {
		return "", domain.NewCycleError(domain.KindUnknownStatus, op, fmt.Errorf("key %q not found", model.FieldStatus))
	}
	verdict, ok := status.Verdict()
	if !ok {
		return "", domain.NewCycleError(domain.KindUnknownStatus, op, fmt.Errorf("status %q", status))
	}
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", name, verdict), nil
}

// currentDate extracts the server-side current_date, when present.
func currentDate(body any) (int64, bool) {
	resp, ok := body.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := resp[keyCurrentDate].(type) {
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}
