package lightpb

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"
)

// AmbientLightServiceClient is the client API for AmbientLightService
type AmbientLightServiceClient interface {
	GetStatus(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetThresholds(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	SetEnabled(ctx context.Context, in *wrapperspb.BoolValue, opts ...grpc.CallOption) (*structpb.Struct, error)
	SubmitSample(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error)
	ListEvents(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.ListValue, error)
}

type ambientLightServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewAmbientLightServiceClient wraps a connection
func NewAmbientLightServiceClient(cc grpc.ClientConnInterface) AmbientLightServiceClient {
	return &ambientLightServiceClient{cc}
}

func (c *ambientLightServiceClient) GetStatus(ctx context.Context, in *emptypb.Empty, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, GetStatusMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ambientLightServiceClient) SetThresholds(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SetThresholdsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ambientLightServiceClient) SetEnabled(ctx context.Context, in *wrapperspb.BoolValue, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SetEnabledMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ambientLightServiceClient) SubmitSample(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, SubmitSampleMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *ambientLightServiceClient) ListEvents(ctx context.Context, in *wrapperspb.Int64Value, opts ...grpc.CallOption) (*structpb.ListValue, error) {
	out := new(structpb.ListValue)
	if err := c.cc.Invoke(ctx, ListEventsMethod, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}
