package homework

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func decode(t *testing.T, body string) RawResponse {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		t.Fatalf("decode %q: %v", body, err)
	}
	return raw
}

func TestValidateResponseSchemaErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not an object", body: `[{"status": "approved", "homework_name": "X"}]`},
		{name: "missing homeworks", body: `{"current_date": 100}`},
		{name: "homeworks not a list", body: `{"homeworks": {"status": "approved"}}`},
		{name: "empty homeworks", body: `{"homeworks": [], "current_date": 100}`},
		{name: "entry not an object", body: `{"homeworks": ["approved"]}`},
		{name: "missing status", body: `{"homeworks": [{"homework_name": "X"}]}`},
		{name: "missing name", body: `{"homeworks": [{"status": "approved"}]}`},
		{name: "status not a string", body: `{"homeworks": [{"status": 1, "homework_name": "X"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateResponse(decode(t, tt.body))
			if !errors.Is(err, ErrSchema) {
				t.Fatalf("ValidateResponse error = %v, want ErrSchema", err)
			}
		})
	}
}

func TestValidateResponseReturnsFirstEntry(t *testing.T) {
	raw := decode(t, `{"homeworks": [
		{"status": "reviewing", "homework_name": "first"},
		{"status": "approved", "homework_name": "second"}
	], "current_date": 1700000000}`)

	got, err := ValidateResponse(raw)
	if err != nil {
		t.Fatalf("ValidateResponse: %v", err)
	}
	want := Record{Status: StatusReviewing, Name: "first"}
	if got != want {
		t.Fatalf("ValidateResponse = %+v, want %+v", got, want)
	}
}

func TestValidateResponseKeepsUnknownStatus(t *testing.T) {
	got, err := ValidateResponse(decode(t, `{"homeworks": [{"status": "lost", "homework_name": "X"}]}`))
	if err != nil {
		t.Fatalf("ValidateResponse: %v", err)
	}
	if got.Status != "lost" {
		t.Fatalf("Status = %q, want %q", got.Status, "lost")
	}
}

func TestRenderMessage(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{StatusApproved, `Изменился статус проверки работы "X" - Работа проверена: ревьюеру всё понравилось. Ура!`},
		{StatusReviewing, `Изменился статус проверки работы "X" - Работа взята на проверку ревьюером.`},
		{StatusRejected, `Изменился статус проверки работы "X" - Работа проверена: у ревьюера есть замечания.`},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			got, err := RenderMessage(Record{Status: tt.status, Name: "X"})
			if err != nil {
				t.Fatalf("RenderMessage: %v", err)
			}
			if got != tt.want {
				t.Fatalf("RenderMessage = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRenderMessageUnknownStatus(t *testing.T) {
	for _, status := range []Status{"", "Approved", "pending", "unknown"} {
		_, err := RenderMessage(Record{Status: status, Name: "X"})
		var unknown *UnknownStatusError
		if !errors.As(err, &unknown) {
			t.Fatalf("RenderMessage(%q) error = %v, want UnknownStatusError", status, err)
		}
		if unknown.Status != status {
			t.Fatalf("UnknownStatusError.Status = %q, want %q", unknown.Status, status)
		}
	}
}

func TestCurrentDate(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		want   int64
		wantOK bool
	}{
		{name: "integer", body: `{"current_date": 1700000000}`, want: 1700000000, wantOK: true},
		{name: "missing", body: `{"homeworks": []}`},
		{name: "fractional", body: `{"current_date": 1.5}`},
		{name: "string", body: `{"current_date": "1700000000"}`},
		{name: "not an object", body: `[]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CurrentDate(decode(t, tt.body))
			if ok != tt.wantOK || got != tt.want {
				t.Fatalf("CurrentDate = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
