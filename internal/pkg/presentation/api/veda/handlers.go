package veda

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/diwise/veda-client/internal/pkg/application/platform"
	"github.com/diwise/veda-client/internal/pkg/application/subscriptions"
	"github.com/diwise/veda-client/pkg/veda/errors"
	"github.com/diwise/veda-client/pkg/veda/types/individuals"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("veda-stub/api")

const maxUploadSize int64 = 32 << 20

func RegisterHandlers(ctx context.Context, r chi.Router, app platform.PlatformAPI) error {
	m, err := newMetrics(prometheus.NewRegistry())
	if err != nil {
		return fmt.Errorf("failed to register metrics: %w", err)
	}

	r.Get("/metrics", m.handler.ServeHTTP)

	r.Group(func(r chi.Router) {
		r.Use(m.Middleware())

		r.Get("/authenticate", NewAuthenticateHandler(app))
		r.Get("/is_ticket_valid", NewIsTicketValidHandler(app))
		r.Get("/get_ticket_trusted", NewGetTicketTrustedHandler(app))

		r.Post("/query", NewQueryHandler(app))

		r.Get("/get_individual", NewGetIndividualHandler(app))
		r.Post("/get_individuals", NewGetIndividualsHandler(app))
		r.Put("/put_individual", NewPutIndividualHandler(app))
		r.Put("/put_individuals", NewPutIndividualsHandler(app))
		r.Put("/remove_individual", NewRemoveIndividualHandler(app))
		r.Put("/add_to_individual", NewModifyIndividualHandler(app, subscriptions.OperationAddTo))
		r.Put("/set_in_individual", NewModifyIndividualHandler(app, subscriptions.OperationSetIn))
		r.Put("/remove_from_individual", NewModifyIndividualHandler(app, subscriptions.OperationRemoveFrom))

		r.Get("/get_rights", NewGetRightsHandler(app))
		r.Get("/get_rights_origin", NewGetRightsOriginHandler(app))
		r.Get("/get_membership", NewGetMembershipHandler(app))

		r.Get("/get_operation_state", NewGetOperationStateHandler(app))

		r.Post("/files", NewUploadFileHandler(app))
		r.Get("/files/{uri}", NewDownloadFileHandler(app))
	})

	return nil
}

type apiFunc func(ctx context.Context, params requestParams) (any, error)

// newJSONHandler parses the request parameters, calls the platform and responds
// with the json encoded result or with the status code that matches the error
func newJSONHandler(spanName string, call apiFunc) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), spanName)
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		params, err := parseRequest(r)
		if err != nil {
			reportError(ctx, w, err)
			return
		}

		result, err := call(ctx, params)
		if err != nil {
			reportError(ctx, w, err)
			return
		}

		body, err := json.Marshal(result)
		if err != nil {
			reportError(ctx, w, fmt.Errorf("failed to marshal response: %s (%w)", err.Error(), errors.ErrInternal))
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	})
}

func reportError(ctx context.Context, w http.ResponseWriter, err error) {
	status := errors.StatusCodeFromError(err)

	logger := logging.GetFromContext(ctx)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed", "err", err.Error())
	} else {
		logger.Debug("request rejected", "status", status, "err", err.Error())
	}

	http.Error(w, err.Error(), status)
}

func NewAuthenticateHandler(app platform.PlatformAPI) http.HandlerFunc {
	return newJSONHandler("authenticate", func(ctx context.Context, p requestParams) (any, error) {
		return app.Authenticate(ctx, p.String("login"), p.String("password"), p.String("secret"))
	})
}

func NewIsTicketValidHandler(app platform.PlatformAPI) http.HandlerFunc {
	return newJSONHandler("is-ticket-valid", func(ctx context.Context, p requestParams) (any, error) {
		return app.IsTicketValid(ctx, p.String("ticket")), nil
	})
}

func NewGetTicketTrustedHandler(app platform.PlatformAPI) http.HandlerFunc {
	return newJSONHandler("get-ticket-trusted", func(ctx context.Context, p requestParams) (any, error) {
		return app.GetTicketTrusted(ctx, p.String("ticket"), p.String("login"))
	})
}

func NewQueryHandler(app platform.PlatformAPI) http.HandlerFunc {
	return newJSONHandler("query", func(ctx context.Context, p requestParams) (any, error) {
		qr, err := p.QueryRequest()
		if err != nil {
			return nil, err
		}
		return app.Query(ctx, p.String("ticket"), qr)
	})
}

func NewGetIndividualHandler(app platform.PlatformAPI) http.HandlerFunc {
	return newJSONHandler("get-individual", func(ctx context.Context, p requestParams) (any, error) {
		return app.GetIndividual(ctx, p.String("ticket"), p.String("uri"))
	})
}

func NewGetIndividualsHandler(app platform.PlatformAPI) http.HandlerFunc {
	return newJSONHandler("get-individuals", func(ctx context.Context, p requestParams) (any, error) {
		uris, err := p.Strings("uris")
		if err != nil {
			return nil, err
		}
		return app.GetIndividuals(ctx, p.String("ticket"), uris)
	})
}

func NewPutIndividualHandler(app platform.PlatformAPI) http.HandlerFunc {
	return newJSONHandler("put-individual", func(ctx context.Context, p requestParams) (any, error) {
		i, err := p.Individual("individual")
		if err != nil {
			return nil, err
		}

		options, err := p.ModifyOptions()
		if err != nil {
			return nil, err
		}

		return app.PutIndividuals(ctx, p.String("ticket"), []*individuals.Individual{i}, options)
	})
}

func NewPutIndividualsHandler(app platform.PlatformAPI) http.HandlerFunc {
	return newJSONHandler("put-individuals", func(ctx context.Context, p requestParams) (any, error) {
		list, err := p.Individuals("individuals")
		if err != nil {
			return nil, err
		}

		options, err := p.ModifyOptions()
		if err != nil {
			return nil, err
		}

		return app.PutIndividuals(ctx, p.String("ticket"), list, options)
	})
}

func NewRemoveIndividualHandler(app platform.PlatformAPI) http.HandlerFunc {
	return newJSONHandler("remove-individual", func(ctx context.Context, p requestParams) (any, error) {
		options, err := p.ModifyOptions()
		if err != nil {
			return nil, err
		}

		return app.RemoveIndividual(ctx, p.String("ticket"), p.String("uri"), options)
	})
}

func NewModifyIndividualHandler(app platform.PlatformAPI, operation subscriptions.Operation) http.HandlerFunc {
	return newJSONHandler(string(operation)+"-individual", func(ctx context.Context, p requestParams) (any, error) {
		fragment, err := p.Individual("individual")
		if err != nil {
			return nil, err
		}

		if uri := p.String("uri"); uri != "" && uri != fragment.URI() {
			return nil, errors.NewBadRequestError(fmt.Sprintf("uri %s does not match the individual %s", uri, fragment.URI()))
		}

		options, err := p.ModifyOptions()
		if err != nil {
			return nil, err
		}

		return app.ModifyIndividual(ctx, p.String("ticket"), operation, fragment, options)
	})
}

func NewGetRightsHandler(app platform.PlatformAPI) http.HandlerFunc {
	return newJSONHandler("get-rights", func(ctx context.Context, p requestParams) (any, error) {
		r, err := app.GetRights(ctx, p.String("ticket"), p.String("uri"))
		if err != nil {
			return nil, err
		}
		return r.ToIndividual(), nil
	})
}

func NewGetRightsOriginHandler(app platform.PlatformAPI) http.HandlerFunc {
	return newJSONHandler("get-rights-origin", func(ctx context.Context, p requestParams) (any, error) {
		return app.GetRightsOrigin(ctx, p.String("ticket"), p.String("uri"))
	})
}

func NewGetMembershipHandler(app platform.PlatformAPI) http.HandlerFunc {
	return newJSONHandler("get-membership", func(ctx context.Context, p requestParams) (any, error) {
		m, err := app.GetMembership(ctx, p.String("ticket"), p.String("uri"))
		if err != nil {
			return nil, err
		}
		return m.ToIndividual(), nil
	})
}

// NewGetOperationStateHandler responds with the operation id as plain text
func NewGetOperationStateHandler(app platform.PlatformAPI) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "get-operation-state")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		params, _ := parseRequest(r)

		moduleID, err := params.Int("module_id")
		if err != nil {
			reportError(ctx, w, err)
			return
		}

		waitOpID, err := params.Int("wait_op_id")
		if err != nil {
			reportError(ctx, w, err)
			return
		}

		state := app.GetOperationState(ctx, moduleID, waitOpID)

		w.Header().Add("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(strconv.FormatInt(state, 10)))
	})
}

func NewUploadFileHandler(app platform.PlatformAPI) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "upload-file")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		err = r.ParseMultipartForm(maxUploadSize)
		if err != nil {
			reportError(ctx, w, errors.NewBadRequestError("expected a multipart form: "+err.Error()))
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			reportError(ctx, w, errors.NewBadRequestError("missing file in form"))
			return
		}
		defer file.Close()

		content, err := io.ReadAll(file)
		if err != nil {
			reportError(ctx, w, errors.NewBadRequestError("unable to read uploaded file"))
			return
		}

		err = app.UploadFile(ctx, r.URL.Query().Get("ticket"), r.FormValue("uri"), r.FormValue("path"), content)
		if err != nil {
			reportError(ctx, w, err)
			return
		}

		w.WriteHeader(http.StatusOK)
	})
}

func NewDownloadFileHandler(app platform.PlatformAPI) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var err error

		ctx, span := tracer.Start(r.Context(), "download-file")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

		// chi matches on the raw path only when it differs from the decoded one
		uri := chi.URLParam(r, "uri")
		if r.URL.RawPath != "" {
			uri, err = url.PathUnescape(uri)
			if err != nil {
				reportError(ctx, w, errors.NewBadRequestError("invalid file uri"))
				return
			}
		}

		content, err := app.DownloadFile(ctx, r.URL.Query().Get("ticket"), uri)
		if err != nil {
			reportError(ctx, w, err)
			return
		}

		w.Header().Add("Content-Type", "application/octet-stream")
		w.WriteHeader(http.StatusOK)
		w.Write(content)
	})
}
