package grpc

// proto.go defines the gRPC server interface for the
// underwriting.v1.UnderwritingService. The repository has no .proto file;
// this file stands in for protoc-generated code.

import (
	"context"

	grpclib "google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// UnderwritingServiceServer is the server API for UnderwritingService,
// mirroring the proto-generated interface from underwriting.v1.UnderwritingService.
type UnderwritingServiceServer interface {
	RunUnderwriting(context.Context, *RunUnderwritingRequest) (*RunResponse, error)
	RerunUnderwriting(context.Context, *RerunUnderwritingRequest) (*RunResponse, error)
	GetRun(context.Context, *GetRunRequest) (*RunResponse, error)
	GetLatestRun(context.Context, *GetLatestRunRequest) (*RunResponse, error)
	GetMatchedLenders(context.Context, *GetMatchedLendersRequest) (*MatchResultListResponse, error)
	GetRejectedLenders(context.Context, *GetRejectedLendersRequest) (*MatchResultListResponse, error)
	GetRuleEvaluations(context.Context, *GetRuleEvaluationsRequest) (*RuleEvaluationListResponse, error)
	mustEmbedUnimplementedUnderwritingServiceServer()
}

// UnimplementedUnderwritingServiceServer provides forward-compatible default implementations.
type UnimplementedUnderwritingServiceServer struct{}

func (UnimplementedUnderwritingServiceServer) RunUnderwriting(context.Context, *RunUnderwritingRequest) (*RunResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RunUnderwriting not implemented")
}
func (UnimplementedUnderwritingServiceServer) RerunUnderwriting(context.Context, *RerunUnderwritingRequest) (*RunResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method RerunUnderwriting not implemented")
}
func (UnimplementedUnderwritingServiceServer) GetRun(context.Context, *GetRunRequest) (*RunResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRun not implemented")
}
func (UnimplementedUnderwritingServiceServer) GetLatestRun(context.Context, *GetLatestRunRequest) (*RunResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetLatestRun not implemented")
}
func (UnimplementedUnderwritingServiceServer) GetMatchedLenders(context.Context, *GetMatchedLendersRequest) (*MatchResultListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetMatchedLenders not implemented")
}
func (UnimplementedUnderwritingServiceServer) GetRejectedLenders(context.Context, *GetRejectedLendersRequest) (*MatchResultListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRejectedLenders not implemented")
}
func (UnimplementedUnderwritingServiceServer) GetRuleEvaluations(context.Context, *GetRuleEvaluationsRequest) (*RuleEvaluationListResponse, error) {
	return nil, status.Errorf(codes.Unimplemented, "method GetRuleEvaluations not implemented")
}
func (UnimplementedUnderwritingServiceServer) mustEmbedUnimplementedUnderwritingServiceServer() {}

// RegisterUnderwritingServiceServer registers srv with s.
func RegisterUnderwritingServiceServer(s *grpclib.Server, srv UnderwritingServiceServer) {
	s.RegisterService(&_UnderwritingService_serviceDesc, srv) //nolint:revive // gRPC handler registration
}

//nolint:revive // gRPC handler registration
var _UnderwritingService_serviceDesc = grpclib.ServiceDesc{
	ServiceName: "underwriting.v1.UnderwritingService",
	HandlerType: (*UnderwritingServiceServer)(nil),
	Methods: []grpclib.MethodDesc{
		{MethodName: "RunUnderwriting", Handler: _UnderwritingService_RunUnderwriting_Handler},
		{MethodName: "RerunUnderwriting", Handler: _UnderwritingService_RerunUnderwriting_Handler},
		{MethodName: "GetRun", Handler: _UnderwritingService_GetRun_Handler},
		{MethodName: "GetLatestRun", Handler: _UnderwritingService_GetLatestRun_Handler},
		{MethodName: "GetMatchedLenders", Handler: _UnderwritingService_GetMatchedLenders_Handler},
		{MethodName: "GetRejectedLenders", Handler: _UnderwritingService_GetRejectedLenders_Handler},
		{MethodName: "GetRuleEvaluations", Handler: _UnderwritingService_GetRuleEvaluations_Handler},
	},
	Streams: []grpclib.StreamDesc{},
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_RunUnderwriting_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RunUnderwritingRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(UnderwritingServiceServer).RunUnderwriting(ctx, req)
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_RerunUnderwriting_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(RerunUnderwritingRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(UnderwritingServiceServer).RerunUnderwriting(ctx, req)
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_GetRun_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetRunRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(UnderwritingServiceServer).GetRun(ctx, req)
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_GetLatestRun_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetLatestRunRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(UnderwritingServiceServer).GetLatestRun(ctx, req)
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_GetMatchedLenders_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetMatchedLendersRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(UnderwritingServiceServer).GetMatchedLenders(ctx, req)
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_GetRejectedLenders_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetRejectedLendersRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(UnderwritingServiceServer).GetRejectedLenders(ctx, req)
}

//nolint:revive,errcheck // gRPC handler registration
func _UnderwritingService_GetRuleEvaluations_Handler(srv interface{}, ctx context.Context, dec func(interface{}) error, _ grpclib.UnaryServerInterceptor) (interface{}, error) {
	req := new(GetRuleEvaluationsRequest)
	if err := dec(req); err != nil {
		return nil, err
	}
	return srv.(UnderwritingServiceServer).GetRuleEvaluations(ctx, req)
}
