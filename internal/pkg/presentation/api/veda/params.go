package veda

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/diwise/veda-client/internal/pkg/application/platform"
	"github.com/diwise/veda-client/pkg/veda/errors"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
)

// requestParams holds the parameters of a request. Query string parameters and json
// body members end up in the same map, with the body taking precedence.
type requestParams map[string]any

func parseRequest(r *http.Request) (requestParams, error) {
	params := requestParams{}

	for k, v := range r.URL.Query() {
		if len(v) == 1 {
			params[k] = v[0]
		} else {
			params[k] = v
		}
	}

	if r.Method == http.MethodGet || r.Body == nil {
		return params, nil
	}

	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return params, nil
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, errors.NewBadRequestError("unable to read request body")
	}

	if len(bytes.TrimSpace(body)) == 0 {
		return params, nil
	}

	members := map[string]any{}

	d := json.NewDecoder(bytes.NewReader(body))
	d.UseNumber()

	err = d.Decode(&members)
	if err != nil {
		return nil, errors.NewBadRequestError(fmt.Sprintf("unable to decode request body: %s", err.Error()))
	}

	for k, v := range members {
		params[k] = v
	}

	return params, nil
}

func (p requestParams) String(key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return v
	case []string:
		if len(v) > 0 {
			return v[0]
		}
		return ""
	default:
		return fmt.Sprint(v)
	}
}

func (p requestParams) Int(key string) (int64, error) {
	s := p.String(key)
	if s == "" {
		return 0, nil
	}

	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, errors.NewBadRequestError(fmt.Sprintf("%s must be an integer, not %q", key, s))
	}

	return i, nil
}

func (p requestParams) Bool(key string) bool {
	b, _ := strconv.ParseBool(p.String(key))
	return b
}

func (p requestParams) Strings(key string) ([]string, error) {
	switch v := p[key].(type) {
	case nil:
		return []string{}, nil
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		result := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, errors.NewBadRequestError(fmt.Sprintf("%s must be a list of strings", key))
			}
			result = append(result, s)
		}
		return result, nil
	default:
		return nil, errors.NewBadRequestError(fmt.Sprintf("%s must be a list of strings", key))
	}
}

func (p requestParams) Individual(key string) (*individuals.Individual, error) {
	obj, ok := p[key].(map[string]any)
	if !ok {
		return nil, errors.NewBadRequestError(fmt.Sprintf("%s must be an individual", key))
	}

	i, err := individuals.FromDict(obj)
	if err != nil {
		return nil, errors.NewBadRequestError(err.Error())
	}

	return i, nil
}

func (p requestParams) Individuals(key string) ([]*individuals.Individual, error) {
	list, ok := p[key].([]any)
	if !ok {
		return nil, errors.NewBadRequestError(fmt.Sprintf("%s must be a list of individuals", key))
	}

	result := make([]*individuals.Individual, 0, len(list))

	for idx, item := range list {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, errors.NewBadRequestError(fmt.Sprintf("%s[%d] must be an individual", key, idx))
		}

		i, err := individuals.FromDict(obj)
		if err != nil {
			return nil, errors.NewBadRequestError(fmt.Sprintf("%s[%d]: %s", key, idx, err.Error()))
		}

		result = append(result, i)
	}

	return result, nil
}

func (p requestParams) ModifyOptions() (platform.ModifyOptions, error) {
	subsystems, err := p.Int("assigned_subsystems")
	if err != nil {
		return platform.ModifyOptions{}, err
	}

	return platform.ModifyOptions{
		PrepareEvents:      p.Bool("prepare_events"),
		AssignedSubsystems: uint8(subsystems),
		EventID:            p.String("event_id"),
		TransactionID:      p.String("transaction_id"),
	}, nil
}

func (p requestParams) QueryRequest() (platform.QueryRequest, error) {
	qr := platform.QueryRequest{
		Query: p.String("query"),
		Sort:  p.String("sort"),
	}

	for _, n := range []struct {
		key    string
		target *int
	}{
		{"from", &qr.From},
		{"top", &qr.Top},
		{"limit", &qr.Limit},
	} {
		v, err := p.Int(n.key)
		if err != nil {
			return qr, err
		}
		*n.target = int(v)
	}

	return qr, nil
}
