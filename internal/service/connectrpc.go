package service

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"gradefetch-backend/internal/components/telemetry"

	"connectrpc.com/connect"
)

// FetchGradeProcedure is the connect procedure name of FetchGrade.
const FetchGradeProcedure = "/gradefetch.v1.GradeService/FetchGrade"

// jsonCodec lets connect carry plain structs as json messages.
type jsonCodec struct{}

func (jsonCodec) Name() string {
	return "json"
}

func (jsonCodec) Marshal(message any) ([]byte, error) {
	return json.Marshal(message)
}

func (jsonCodec) Unmarshal(data []byte, message any) error {
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, message)
}

func (s Service) handleFetchGrade(ctx context.Context, req *connect.Request[FetchGradeRequest]) (*connect.Response[GradeReport], error) {
	report, err := s.FetchGrade(ctx, *req.Msg)
	if errors.Is(err, ErrInvalidRequest) {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}
	if err != nil {
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	return connect.NewResponse(&report), nil
}

// NewFetchGradeHandler returns the connect handler of FetchGrade, it speaks
// json only.
func NewFetchGradeHandler(s Service, opts ...connect.HandlerOption) http.Handler {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	return connect.NewUnaryHandler(FetchGradeProcedure, s.handleFetchGrade, opts...)
}

// requestLogInterceptor reports every rpc with its outcome.
type requestLogInterceptor struct {
	tel telemetry.API
}

func newRequestLogInterceptor(tel telemetry.API) requestLogInterceptor {
	return requestLogInterceptor{tel: tel}
}

func (i requestLogInterceptor) WrapUnary(next connect.UnaryFunc) connect.UnaryFunc {
	return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
		res, err := next(ctx, req)
		code := "ok"
		if err != nil {
			code = connect.CodeOf(err).String()
		}
		i.tel.ReportDebug("rpc", req.Spec().Procedure, req.Peer().Addr, code)
		return res, err
	}
}

func (i requestLogInterceptor) WrapStreamingClient(next connect.StreamingClientFunc) connect.StreamingClientFunc {
	return next
}

func (i requestLogInterceptor) WrapStreamingHandler(next connect.StreamingHandlerFunc) connect.StreamingHandlerFunc {
	return next
}
