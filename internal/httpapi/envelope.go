package httpapi

import (
	"encoding/json"
	"strings"

	"github.com/chuanjin/toonbench/internal/parser"
)

// ParseRequest is the body accepted by the parse endpoints.
type ParseRequest struct {
	Content *string `json:"content"`
}

// ParseResponse is the wire form of a parser.Result.
type ParseResponse struct {
	Format         string `json:"format"`
	Input          string `json:"input"`
	Success        bool   `json:"success"`
	Data           any    `json:"data,omitempty"`
	Error          string `json:"error,omitempty"`
	ProcessingTime string `json:"processingTime"`
}

// MarshalJSON always emits "data" on success, even when the parsed value
// is null; failures omit it.
func (r ParseResponse) MarshalJSON() ([]byte, error) {
	type plain ParseResponse
	if !r.Success {
		return json.Marshal(plain(r))
	}
	return json.Marshal(struct {
		plain
		Data any `json:"data"`
	}{plain(r), r.Data})
}

type errorResponse struct {
	Error string `json:"error"`
}

func newParseResponse(format, input string, res parser.Result) ParseResponse {
	return ParseResponse{
		Format:         strings.ToUpper(format),
		Input:          input,
		Success:        res.Success,
		Data:           res.Data,
		Error:          res.Error,
		ProcessingTime: res.ProcessingTime(),
	}
}
