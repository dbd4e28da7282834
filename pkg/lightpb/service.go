// Package lightpb describes the AmbientLightService gRPC API.
//
// Messages are protobuf well-known types, so the service needs no generated
// code: status and events travel as google.protobuf.Struct with the field
// names defined below.
package lightpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

const ServiceName = "ambientlight.v1.AmbientLightService"

const (
	GetStatusMethod     = "/" + ServiceName + "/GetStatus"
	SetThresholdsMethod = "/" + ServiceName + "/SetThresholds"
	SetEnabledMethod    = "/" + ServiceName + "/SetEnabled"
	SubmitSampleMethod  = "/" + ServiceName + "/SubmitSample"
	ListEventsMethod    = "/" + ServiceName + "/ListEvents"
)

// Struct field names
const (
	FieldEnabled               = "enabled"
	FieldDarkLux               = "dark_lux"
	FieldBrightLux             = "bright_lux"
	FieldMinIntervalMillis     = "min_interval_millis"
	FieldLastAcceptedTimestamp = "last_accepted_timestamp"
	FieldLatestLux             = "latest_lux"
	FieldTimestampMillis       = "timestamp_millis"
	FieldLux                   = "lux"
	FieldAccepted              = "accepted"
	FieldStatus                = "status"
	FieldID                    = "id"
	FieldKind                  = "kind"
)

// AmbientLightServiceServer is the server API for AmbientLightService
type AmbientLightServiceServer interface {
	GetStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error)
	SetThresholds(context.Context, *structpb.Struct) (*structpb.Struct, error)
	SetEnabled(context.Context, *wrapperspb.BoolValue) (*structpb.Struct, error)
	SubmitSample(context.Context, *structpb.Struct) (*structpb.Struct, error)
	ListEvents(context.Context, *wrapperspb.Int64Value) (*structpb.ListValue, error)
}

// UnimplementedAmbientLightServiceServer can be embedded for forward compatibility
type UnimplementedAmbientLightServiceServer struct{}

func (UnimplementedAmbientLightServiceServer) GetStatus(context.Context, *emptypb.Empty) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method GetStatus not implemented")
}
func (UnimplementedAmbientLightServiceServer) SetThresholds(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SetThresholds not implemented")
}
func (UnimplementedAmbientLightServiceServer) SetEnabled(context.Context, *wrapperspb.BoolValue) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SetEnabled not implemented")
}
func (UnimplementedAmbientLightServiceServer) SubmitSample(context.Context, *structpb.Struct) (*structpb.Struct, error) {
	return nil, status.Error(codes.Unimplemented, "method SubmitSample not implemented")
}
func (UnimplementedAmbientLightServiceServer) ListEvents(context.Context, *wrapperspb.Int64Value) (*structpb.ListValue, error) {
	return nil, status.Error(codes.Unimplemented, "method ListEvents not implemented")
}

// RegisterAmbientLightServiceServer registers srv on s
func RegisterAmbientLightServiceServer(s grpc.ServiceRegistrar, srv AmbientLightServiceServer) {
	s.RegisterService(&AmbientLightService_ServiceDesc, srv)
}

func getStatusHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(emptypb.Empty)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AmbientLightServiceServer).GetStatus(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: GetStatusMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AmbientLightServiceServer).GetStatus(ctx, req.(*emptypb.Empty))
	}
	return interceptor(ctx, in, info, handler)
}

func setThresholdsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AmbientLightServiceServer).SetThresholds(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SetThresholdsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AmbientLightServiceServer).SetThresholds(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func setEnabledHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.BoolValue)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AmbientLightServiceServer).SetEnabled(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SetEnabledMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AmbientLightServiceServer).SetEnabled(ctx, req.(*wrapperspb.BoolValue))
	}
	return interceptor(ctx, in, info, handler)
}

func submitSampleHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(structpb.Struct)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AmbientLightServiceServer).SubmitSample(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: SubmitSampleMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AmbientLightServiceServer).SubmitSample(ctx, req.(*structpb.Struct))
	}
	return interceptor(ctx, in, info, handler)
}

func listEventsHandler(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
	in := new(wrapperspb.Int64Value)
	if err := dec(in); err != nil {
		return nil, err
	}
	if interceptor == nil {
		return srv.(AmbientLightServiceServer).ListEvents(ctx, in)
	}
	info := &grpc.UnaryServerInfo{Server: srv, FullMethod: ListEventsMethod}
	handler := func(ctx context.Context, req interface{}) (interface{}, error) {
		return srv.(AmbientLightServiceServer).ListEvents(ctx, req.(*wrapperspb.Int64Value))
	}
	return interceptor(ctx, in, info, handler)
}

// AmbientLightService_ServiceDesc is the grpc.ServiceDesc for AmbientLightService
var AmbientLightService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*AmbientLightServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "GetStatus", Handler: getStatusHandler},
		{MethodName: "SetThresholds", Handler: setThresholdsHandler},
		{MethodName: "SetEnabled", Handler: setEnabledHandler},
		{MethodName: "SubmitSample", Handler: submitSampleHandler},
		{MethodName: "ListEvents", Handler: listEventsHandler},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: FileName,
}
