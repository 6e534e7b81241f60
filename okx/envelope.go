package okx

import (
	"encoding/json"
	"fmt"

	"okxflow/models"
)

// CodeOK is the envelope code the exchange uses for successful calls.
const CodeOK = "0"

// Envelope is the outer wrapper the exchange puts around every REST
// response. Data is only meaningful when Code is CodeOK.
type Envelope struct {
	Code string            `json:"code"`
	Msg  string            `json:"msg"`
	Data []json.RawMessage `json:"data"`
}

// decodeEnvelope parses a response body and turns transport-level failures
// and envelope-level rejections into an APIError. On success it returns the
// envelope with the data entries untouched.
func decodeEnvelope(httpStatus int, body []byte) (*Envelope, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		if httpStatus >= 200 && httpStatus < 300 {
			return nil, fmt.Errorf("failed to parse response envelope: %w", err)
		}
		// Some gateway failures return non-JSON bodies; keep the status.
		return nil, &APIError{
			Kind:       classify("", httpStatus),
			Message:    fmt.Sprintf("non-JSON response body (%d bytes)", len(body)),
			HTTPStatus: httpStatus,
		}
	}

	if httpStatus < 200 || httpStatus >= 300 || env.Code != CodeOK {
		status := httpStatus
		if status >= 200 && status < 300 {
			status = 0
		}
		return nil, &APIError{
			Kind:       classify(env.Code, httpStatus),
			Code:       env.Code,
			Message:    env.Msg,
			HTTPStatus: status,
		}
	}

	return &env, nil
}

// Records decodes every envelope data entry into a generic record. This is
// the raw client's terminal output for object-shaped endpoints.
func (e *Envelope) Records() ([]models.Record, error) {
	records := make([]models.Record, 0, len(e.Data))
	for _, raw := range e.Data {
		var rec models.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("failed to parse data entry as object: %w", err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// Rows decodes every envelope data entry as a positional string array, the
// shape the candlestick endpoints use.
func (e *Envelope) Rows() ([][]string, error) {
	rows := make([][]string, 0, len(e.Data))
	for _, raw := range e.Data {
		var row []string
		if err := json.Unmarshal(raw, &row); err != nil {
			return nil, fmt.Errorf("failed to parse data entry as row: %w", err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
