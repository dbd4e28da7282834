package grpc

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/pkg/lightpb"
)

const (
	defaultEventLimit = 50
	maxEventLimit     = 1000
)

// LatestLuxSource reports the last accepted illuminance; EventRecorder implements it
type LatestLuxSource interface {
	LatestLux() (float64, bool)
}

// AmbientLightHandler implements the gRPC AmbientLightService
type AmbientLightHandler struct {
	lightpb.UnimplementedAmbientLightServiceServer
	monitor *ports.GuardedMonitor
	repo    domain.EventRepository
	latest  LatestLuxSource
	now     func() time.Time
}

// NewAmbientLightHandler creates a new gRPC handler; latest may be nil
func NewAmbientLightHandler(monitor *ports.GuardedMonitor, repo domain.EventRepository, latest LatestLuxSource) *AmbientLightHandler {
	return &AmbientLightHandler{
		monitor: monitor,
		repo:    repo,
		latest:  latest,
		now:     time.Now,
	}
}

// GetStatus returns the monitor configuration and rate limiter state
func (h *AmbientLightHandler) GetStatus(ctx context.Context, _ *emptypb.Empty) (*structpb.Struct, error) {
	log.Debug().Msg("GetStatus called")
	return h.statusToProto(h.monitor.Status()), nil
}

// SetThresholds updates whichever of dark_lux/bright_lux is present
func (h *AmbientLightHandler) SetThresholds(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	dark, hasDark, err := numberField(req, lightpb.FieldDarkLux)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	bright, hasBright, err := numberField(req, lightpb.FieldBrightLux)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	switch {
	case hasDark && hasBright:
		h.monitor.SetThresholds(dark, bright)
	case hasDark:
		h.monitor.SetDarkLux(dark)
	case hasBright:
		h.monitor.SetBrightLux(bright)
	default:
		return nil, status.Error(codes.InvalidArgument, "dark_lux or bright_lux is required")
	}

	st := h.monitor.Status()
	log.Info().
		Float64("dark_lux", st.Thresholds.DarkLux).
		Float64("bright_lux", st.Thresholds.BrightLux).
		Msg("thresholds updated")

	return h.statusToProto(st), nil
}

// SetEnabled toggles sample processing
func (h *AmbientLightHandler) SetEnabled(ctx context.Context, req *wrapperspb.BoolValue) (*structpb.Struct, error) {
	h.monitor.SetEnabled(req.GetValue())
	log.Info().Bool("enabled", req.GetValue()).Msg("monitor enabled state changed")

	return h.statusToProto(h.monitor.Status()), nil
}

// SubmitSample injects a reading as if it came from the sensor
func (h *AmbientLightHandler) SubmitSample(ctx context.Context, req *structpb.Struct) (*structpb.Struct, error) {
	lux, ok, err := numberField(req, lightpb.FieldLux)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if !ok {
		return nil, status.Error(codes.InvalidArgument, "lux is required")
	}

	ts, ok, err := numberField(req, lightpb.FieldTimestampMillis)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	sample := domain.NewSample(h.now(), lux)
	if ok {
		ms, err := toMillis(ts)
		if err != nil {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		sample.TimestampMillis = ms
	}

	accepted := h.monitor.SubmitSample(sample)
	log.Debug().
		Int64("timestamp_ms", sample.TimestampMillis).
		Float64("lux", lux).
		Bool("accepted", accepted).
		Msg("SubmitSample called")

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		lightpb.FieldAccepted: structpb.NewBoolValue(accepted),
		lightpb.FieldStatus:   structpb.NewStructValue(h.statusToProto(h.monitor.Status())),
	}}, nil
}

// ListEvents returns the most recent threshold events, newest first
func (h *AmbientLightHandler) ListEvents(ctx context.Context, req *wrapperspb.Int64Value) (*structpb.ListValue, error) {
	limit := int(req.GetValue())
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if limit > maxEventLimit {
		limit = maxEventLimit
	}

	events, err := h.repo.GetLatestEvents(ctx, limit)
	if err != nil {
		log.Error().Err(err).Msg("failed to get events")
		return nil, status.Error(codes.Internal, "failed to get events")
	}

	values := make([]*structpb.Value, len(events))
	for i, e := range events {
		values[i] = structpb.NewStructValue(convertEventToProto(e))
	}

	return &structpb.ListValue{Values: values}, nil
}

func (h *AmbientLightHandler) statusToProto(st domain.MonitorStatus) *structpb.Struct {
	fields := map[string]*structpb.Value{
		lightpb.FieldEnabled:               structpb.NewBoolValue(st.Enabled),
		lightpb.FieldDarkLux:               structpb.NewNumberValue(st.Thresholds.DarkLux),
		lightpb.FieldBrightLux:             structpb.NewNumberValue(st.Thresholds.BrightLux),
		lightpb.FieldMinIntervalMillis:     structpb.NewNumberValue(float64(st.MinInterval.Milliseconds())),
		lightpb.FieldLastAcceptedTimestamp: structpb.NewNumberValue(float64(st.LastAcceptedTimestamp)),
	}

	if h.latest != nil {
		if lux, ok := h.latest.LatestLux(); ok {
			fields[lightpb.FieldLatestLux] = structpb.NewNumberValue(lux)
		}
	}

	return &structpb.Struct{Fields: fields}
}

// convertEventToProto converts domain model to protobuf
func convertEventToProto(e *domain.LightEvent) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		lightpb.FieldID:              structpb.NewNumberValue(float64(e.ID)),
		lightpb.FieldKind:            structpb.NewStringValue(string(e.Kind)),
		lightpb.FieldLux:             structpb.NewNumberValue(e.Lux),
		lightpb.FieldTimestampMillis: structpb.NewNumberValue(float64(e.Timestamp.UnixMilli())),
	}}
}

// numberField reads an optional numeric field
func numberField(s *structpb.Struct, name string) (float64, bool, error) {
	v, ok := s.GetFields()[name]
	if !ok {
		return 0, false, nil
	}
	n, ok := v.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, false, fmt.Errorf("%s must be a number", name)
	}
	return n.NumberValue, true, nil
}

// toMillis converts a wire timestamp to int64 milliseconds.
// Values outside the int64 range, fractions and NaN/Inf are rejected.
func toMillis(v float64) (int64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%s must be finite", lightpb.FieldTimestampMillis)
	}
	if math.Trunc(v) != v {
		return 0, fmt.Errorf("%s must be a whole number", lightpb.FieldTimestampMillis)
	}
	// 1<<63 is the first float64 past MaxInt64
	if v < math.MinInt64 || v >= 1<<63 {
		return 0, fmt.Errorf("%s is out of range", lightpb.FieldTimestampMillis)
	}
	return int64(v), nil
}

var _ lightpb.AmbientLightServiceServer = (*AmbientLightHandler)(nil)
