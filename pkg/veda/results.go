package veda

import (
	"encoding/json"
	"fmt"

	"github.com/diwise/veda-client/pkg/veda/errors"
)

// Ticket is the session credential returned by a successful authentication
type Ticket struct {
	ID      string `json:"id"`
	UserURI string `json:"user_uri"`
	EndTime int64  `json:"end_time"`
	Result  int    `json:"result"`
}

func NewTicket(body []byte) (*Ticket, error) {
	t := &Ticket{}
	err := json.Unmarshal(body, t)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal ticket: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if t.ID == "" {
		return nil, fmt.Errorf("response did not contain a ticket id (%w)", errors.ErrBadResponse)
	}

	return t, nil
}

// OperationResult is returned by all modifying operations
type OperationResult struct {
	OpID   int64 `json:"op_id"`
	Result int   `json:"result"`
}

func NewOperationResult(body []byte) (*OperationResult, error) {
	r := &OperationResult{}
	if len(body) > 0 {
		err := json.Unmarshal(body, r)
		if err != nil {
			return nil, fmt.Errorf("failed to unmarshal operation result: %s (%w)", err.Error(), errors.ErrBadResponse)
		}
	}
	return r, nil
}

type QueryResult struct {
	Result        []string `json:"result"`
	Count         int      `json:"count"`
	Estimated     int      `json:"estimated"`
	Processed     int      `json:"processed"`
	Cursor        int      `json:"cursor"`
	TotalTime     int      `json:"total_time"`
	QueryTime     int      `json:"query_time"`
	AuthorizeTime int      `json:"authorize_time"`
	ResultCode    int      `json:"result_code"`
}

func NewQueryResult(body []byte) (*QueryResult, error) {
	qr := &QueryResult{}
	err := json.Unmarshal(body, qr)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal query result: %s (%w)", err.Error(), errors.ErrBadResponse)
	}

	if qr.Result == nil {
		qr.Result = []string{}
	}

	return qr, nil
}

// HasMore reports if there are more results to fetch after this page
func (qr *QueryResult) HasMore() bool {
	return qr.Cursor < qr.Estimated && len(qr.Result) > 0
}
