package router

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/reelify-app/backend/pkg/errorx"
	"github.com/reelify-app/backend/pkg/xcontext"
)

func register[Request, Response any](
	r *Router, method, pattern string, handler HandlerFunc[Request, Response],
) {
	// The middleware chain is captured at registration time, so branches
	// declared after this call do not affect the route.
	befores := r.befores
	afters := r.afters
	closers := r.closers

	r.mux.HandleFunc(pattern, func(w http.ResponseWriter, httpReq *http.Request) {
		ctx := r.baseContext(httpReq, w)
		defer func() {
			for _, closer := range closers {
				closer(ctx)
			}
		}()

		err := func() error {
			for _, before := range befores {
				newCtx, err := before(ctx)
				if err != nil {
					return err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			if httpReq.Method != method {
				return errorx.New(errorx.BadRequest, "Not supported method %s", httpReq.Method)
			}

			var req Request
			if err := bind(httpReq, &req); err != nil {
				xcontext.Logger(ctx).Debugf("Cannot bind the request: %v", err)
				return errorx.New(errorx.BadRequest, "Cannot parse the request")
			}

			resp, err := handler(ctx, &req)
			if err != nil {
				return err
			}

			xcontext.SetResponse(ctx, resp)

			for _, after := range afters {
				newCtx, err := after(ctx)
				if err != nil {
					return err
				}

				if newCtx != nil {
					ctx = newCtx
				}
			}

			return nil
		}()

		if err != nil {
			xcontext.SetError(ctx, err)
		}

		writeResponse(ctx)
	})
}

func bind(httpReq *http.Request, req any) error {
	if httpReq.Method == http.MethodGet {
		return bindQuery(httpReq.URL.Query(), req)
	}

	contentType := httpReq.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		// Multipart payloads are read by the handler through the raw request.
		return nil
	}

	if err := json.NewDecoder(httpReq.Body).Decode(req); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}

		return err
	}

	return nil
}
