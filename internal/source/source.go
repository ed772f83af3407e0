// Package source provides the listApis metadata consumed by the generator,
// either fetched from a management server or read from a captured response.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cast"

	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/logger"
	"github.com/nathanejohnson/cloudstack-php-client-sub001/internal/model"
)

// Source supplies the raw method records of one generation run
type Source interface {
	FetchAllMethods(ctx context.Context) ([]model.RawMethod, error)
}

// listApisEnvelope is the JSON document returned by command=listApis&response=json
type listApisEnvelope struct {
	Response *listApisResponse `json:"listapisresponse"`
}

type listApisResponse struct {
	Count     any               `json:"count"`
	API       []model.RawMethod `json:"api"`
	ErrorCode any               `json:"errorcode"`
	ErrorText string            `json:"errortext"`
}

// APIError is an error payload returned by the management server
type APIError struct {
	Code int
	Text string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("cloudstack api error %d: %s", e.Code, e.Text)
}

// Decode parses a listApis response, keeping the method order of the payload
func Decode(r io.Reader) ([]model.RawMethod, error) {
	var envelope listApisEnvelope
	if err := json.NewDecoder(r).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode listApis response: %w", err)
	}

	resp := envelope.Response
	if resp == nil {
		return nil, &model.MalformedInputError{Path: "listapisresponse", Reason: "envelope is missing"}
	}
	if resp.ErrorCode != nil {
		return nil, &APIError{Code: cast.ToInt(resp.ErrorCode), Text: resp.ErrorText}
	}

	if resp.Count != nil {
		if count := cast.ToInt(resp.Count); count != len(resp.API) {
			logger.Warn("listApis reports count %d but carries %d api entries", count, len(resp.API))
		}
	}

	return resp.API, nil
}
