package homework

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Status is the review state of a homework as reported by the API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdicts maps every known status to the text shown to the student.
var Verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Record is one entry of the "homeworks" list.
type Record struct {
	Status Status
	Name   string // homework_name
}

// RawResponse is a decoded JSON body: maps, slices, strings and json.Number.
type RawResponse any

// ErrSchema is returned when the API payload does not have the expected shape.
var ErrSchema = errors.New("unexpected API response schema")

// UnknownStatusError is returned for a status without a verdict.
type UnknownStatusError struct {
	Status Status
}

func (e *UnknownStatusError) Error() string {
	return fmt.Sprintf("unknown homework status %q", e.Status)
}

// ValidateResponse checks the payload and returns its first homework.
// Any further entries are ignored.
func ValidateResponse(raw RawResponse) (Record, error) {
	payload, ok := raw.(map[string]any)
	if !ok {
		return Record{}, fmt.Errorf("%w: payload is %T, not an object", ErrSchema, raw)
	}

	value, ok := payload["homeworks"]
	if !ok {
		return Record{}, fmt.Errorf("%w: homeworks key is missing", ErrSchema)
	}
	homeworks, ok := value.([]any)
	if !ok {
		return Record{}, fmt.Errorf("%w: homeworks is %T, not a list", ErrSchema, value)
	}
	if len(homeworks) == 0 {
		return Record{}, fmt.Errorf("%w: homeworks list is empty", ErrSchema)
	}

	entry, ok := homeworks[0].(map[string]any)
	if !ok {
		return Record{}, fmt.Errorf("%w: homework entry is %T, not an object", ErrSchema, homeworks[0])
	}
	status, err := stringField(entry, "status")
	if err != nil {
		return Record{}, err
	}
	name, err := stringField(entry, "homework_name")
	if err != nil {
		return Record{}, err
	}

	return Record{Status: Status(status), Name: name}, nil
}

func stringField(entry map[string]any, key string) (string, error) {
	value, ok := entry[key]
	if !ok {
		return "", fmt.Errorf("%w: homework has no %s", ErrSchema, key)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: homework %s is %T, not a string", ErrSchema, key, value)
	}
	return s, nil
}

// CurrentDate extracts the server timestamp that starts the next window.
func CurrentDate(raw RawResponse) (int64, bool) {
	payload, ok := raw.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := payload["current_date"].(type) {
	case json.Number:
		ts, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return ts, true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}

// RenderMessage builds the notification text for a record.
func RenderMessage(r Record) (string, error) {
	verdict, ok := Verdicts[r.Status]
	if !ok {
		return "", &UnknownStatusError{Status: r.Status}
	}
	return fmt.Sprintf(`Изменился статус проверки работы "%s" - %s`, r.Name, verdict), nil
}
