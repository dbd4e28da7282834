package grpc

import (
	"context"
	"math"
	"net"
	"testing"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/emptypb"
	"google.golang.org/protobuf/types/known/structpb"
	"google.golang.org/protobuf/types/known/wrapperspb"

	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/adapters/memory"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/domain"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/internal/ports"
	"github.com/quentinrf/plant-monitor/services/ambient-light-service/pkg/lightpb"
)

// startTestServer creates an in-process gRPC server and returns a connected client.
// The server is stopped when the test ends.
func startTestServer(t *testing.T) lightpb.AmbientLightServiceClient {
	t.Helper()

	repo := memory.NewEventRepository()
	recorder := ports.NewEventRecorder(repo, nil)
	monitor := ports.NewGuardedMonitor(domain.NewAmbientLightMonitor(domain.DefaultMonitorConfig()))
	monitor.SetObserver(recorder)

	handler := NewAmbientLightHandler(monitor, repo, recorder)
	handler.now = func() time.Time { return time.UnixMilli(5_000) }

	lis, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to listen: %v", err)
	}

	srv := grpc.NewServer()
	lightpb.RegisterAmbientLightServiceServer(srv, handler)

	go srv.Serve(lis)
	t.Cleanup(func() {
		srv.GracefulStop()
	})

	conn, err := grpc.NewClient(
		lis.Addr().String(),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("failed to dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	return lightpb.NewAmbientLightServiceClient(conn)
}

func submit(t *testing.T, client lightpb.AmbientLightServiceClient, ts int64, lux float64) *structpb.Struct {
	t.Helper()

	req, err := structpb.NewStruct(map[string]interface{}{
		lightpb.FieldTimestampMillis: ts,
		lightpb.FieldLux:             lux,
	})
	if err != nil {
		t.Fatalf("failed to build request: %v", err)
	}

	resp, err := client.SubmitSample(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitSample failed: %v", err)
	}
	return resp
}

func TestGetStatus_Defaults(t *testing.T) {
	client := startTestServer(t)

	resp, err := client.GetStatus(context.Background(), &emptypb.Empty{})
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}

	f := resp.GetFields()
	if !f[lightpb.FieldEnabled].GetBoolValue() {
		t.Error("expected monitor to be enabled")
	}
	if got := f[lightpb.FieldDarkLux].GetNumberValue(); got != 45 {
		t.Errorf("expected dark_lux 45, got %v", got)
	}
	if got := f[lightpb.FieldBrightLux].GetNumberValue(); got != 100 {
		t.Errorf("expected bright_lux 100, got %v", got)
	}
	if got := f[lightpb.FieldMinIntervalMillis].GetNumberValue(); got != 200 {
		t.Errorf("expected min_interval_millis 200, got %v", got)
	}
	if _, ok := f[lightpb.FieldLatestLux]; ok {
		t.Error("expected no latest_lux before any sample")
	}
}

func TestSubmitSample_RateLimitAndEvents(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	cases := []struct {
		ts       int64
		lux      float64
		accepted bool
	}{
		{ts: 0, lux: 10, accepted: true},
		{ts: 100, lux: 200, accepted: false},
		{ts: 250, lux: 200, accepted: true},
		{ts: 500, lux: 70, accepted: true},
	}

	for _, tc := range cases {
		resp := submit(t, client, tc.ts, tc.lux)
		if got := resp.GetFields()[lightpb.FieldAccepted].GetBoolValue(); got != tc.accepted {
			t.Errorf("t=%d: expected accepted=%v, got %v", tc.ts, tc.accepted, got)
		}
	}

	list, err := client.ListEvents(ctx, wrapperspb.Int64(10))
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(list.Values) != 2 {
		t.Fatalf("expected 2 events, got %d", len(list.Values))
	}

	newest := list.Values[0].GetStructValue().GetFields()
	if newest[lightpb.FieldKind].GetStringValue() != "bright" || newest[lightpb.FieldLux].GetNumberValue() != 200 {
		t.Errorf("unexpected newest event: %v", newest)
	}
	oldest := list.Values[1].GetStructValue().GetFields()
	if oldest[lightpb.FieldKind].GetStringValue() != "dark" || oldest[lightpb.FieldLux].GetNumberValue() != 10 {
		t.Errorf("unexpected oldest event: %v", oldest)
	}

	st, err := client.GetStatus(ctx, &emptypb.Empty{})
	if err != nil {
		t.Fatalf("GetStatus failed: %v", err)
	}
	if got := st.GetFields()[lightpb.FieldLatestLux].GetNumberValue(); got != 70 {
		t.Errorf("expected latest_lux 70, got %v", got)
	}
	if got := st.GetFields()[lightpb.FieldLastAcceptedTimestamp].GetNumberValue(); got != 500 {
		t.Errorf("expected last_accepted_timestamp 500, got %v", got)
	}
}

func TestSubmitSample_DefaultsToServerClock(t *testing.T) {
	client := startTestServer(t)

	req, _ := structpb.NewStruct(map[string]interface{}{lightpb.FieldLux: 300.0})
	resp, err := client.SubmitSample(context.Background(), req)
	if err != nil {
		t.Fatalf("SubmitSample failed: %v", err)
	}

	st := resp.GetFields()[lightpb.FieldStatus].GetStructValue().GetFields()
	if got := st[lightpb.FieldLastAcceptedTimestamp].GetNumberValue(); got != 5_000 {
		t.Errorf("expected server clock timestamp 5000, got %v", got)
	}
}

func TestSubmitSample_InvalidArgument(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	missing, _ := structpb.NewStruct(map[string]interface{}{lightpb.FieldTimestampMillis: 1000})
	wrongType, _ := structpb.NewStruct(map[string]interface{}{lightpb.FieldLux: "bright"})

	for name, req := range map[string]*structpb.Struct{"missing lux": missing, "string lux": wrongType} {
		_, err := client.SubmitSample(ctx, req)
		if status.Code(err) != codes.InvalidArgument {
			t.Errorf("%s: expected InvalidArgument, got %v", name, err)
		}
	}
}

func TestSetThresholds(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	both, _ := structpb.NewStruct(map[string]interface{}{
		lightpb.FieldDarkLux:   20.0,
		lightpb.FieldBrightLux: 80.0,
	})
	resp, err := client.SetThresholds(ctx, both)
	if err != nil {
		t.Fatalf("SetThresholds failed: %v", err)
	}
	if got := resp.GetFields()[lightpb.FieldDarkLux].GetNumberValue(); got != 20 {
		t.Errorf("expected dark_lux 20, got %v", got)
	}

	brightOnly, _ := structpb.NewStruct(map[string]interface{}{lightpb.FieldBrightLux: 90.0})
	resp, err = client.SetThresholds(ctx, brightOnly)
	if err != nil {
		t.Fatalf("SetThresholds failed: %v", err)
	}
	f := resp.GetFields()
	if f[lightpb.FieldDarkLux].GetNumberValue() != 20 || f[lightpb.FieldBrightLux].GetNumberValue() != 90 {
		t.Errorf("expected 20/90, got %v/%v", f[lightpb.FieldDarkLux].GetNumberValue(), f[lightpb.FieldBrightLux].GetNumberValue())
	}

	// 30 lux is no longer dark with dark_lux=20
	submit(t, client, 1000, 30)
	list, err := client.ListEvents(ctx, wrapperspb.Int64(0))
	if err != nil {
		t.Fatalf("ListEvents failed: %v", err)
	}
	if len(list.Values) != 0 {
		t.Errorf("expected no events, got %d", len(list.Values))
	}

	if _, err := client.SetThresholds(ctx, &structpb.Struct{}); status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument for empty request, got %v", err)
	}
}

func TestSetEnabled(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	resp, err := client.SetEnabled(ctx, wrapperspb.Bool(false))
	if err != nil {
		t.Fatalf("SetEnabled failed: %v", err)
	}
	if resp.GetFields()[lightpb.FieldEnabled].GetBoolValue() {
		t.Error("expected monitor to be disabled")
	}

	sub := submit(t, client, 1000, 10)
	if sub.GetFields()[lightpb.FieldAccepted].GetBoolValue() {
		t.Error("expected sample to be ignored while disabled")
	}

	if _, err := client.SetEnabled(ctx, wrapperspb.Bool(true)); err != nil {
		t.Fatalf("SetEnabled failed: %v", err)
	}
	sub = submit(t, client, 1000, 10)
	if !sub.GetFields()[lightpb.FieldAccepted].GetBoolValue() {
		t.Error("expected sample to be accepted after re-enable")
	}
}

func TestSubmitSample_RejectsBadTimestamps(t *testing.T) {
	client := startTestServer(t)
	ctx := context.Background()

	if resp := submit(t, client, 10_000, 70); !resp.GetFields()[lightpb.FieldAccepted].GetBoolValue() {
		t.Fatal("expected first sample to be accepted")
	}

	cases := map[string]float64{
		"above int64":  1e19,
		"below int64":  -1e19,
		"exactly 2^63": 1 << 63,
		"NaN":          math.NaN(),
		"+Inf":         math.Inf(1),
		"-Inf":         math.Inf(-1),
		"fractional":   20_000.5,
	}
	for name, ts := range cases {
		req := &structpb.Struct{Fields: map[string]*structpb.Value{
			lightpb.FieldTimestampMillis: structpb.NewNumberValue(ts),
			lightpb.FieldLux:             structpb.NewNumberValue(70),
		}}
		if _, err := client.SubmitSample(ctx, req); status.Code(err) != codes.InvalidArgument {
			t.Errorf("%s: expected InvalidArgument, got %v", name, err)
		}
	}

	// the baseline is untouched, so a later real sample still goes through
	resp := submit(t, client, 20_000, 70)
	if !resp.GetFields()[lightpb.FieldAccepted].GetBoolValue() {
		t.Error("expected sample at t=20000 to be accepted")
	}
	st := resp.GetFields()[lightpb.FieldStatus].GetStructValue().GetFields()
	if got := st[lightpb.FieldLastAcceptedTimestamp].GetNumberValue(); got != 20_000 {
		t.Errorf("expected last_accepted_timestamp 20000, got %v", got)
	}
}

func TestSubmitSample_OutOfOrderTimestampDropped(t *testing.T) {
	client := startTestServer(t)

	submit(t, client, 1_700_000_000_000, 70)
	if resp := submit(t, client, -9_000_000_000_000_000_000, 70); resp.GetFields()[lightpb.FieldAccepted].GetBoolValue() {
		t.Error("expected out-of-order sample to be dropped")
	}
	if resp := submit(t, client, 1_700_000_010_000, 70); !resp.GetFields()[lightpb.FieldAccepted].GetBoolValue() {
		t.Error("expected later sample to be accepted after an out-of-order one")
	}
}

func TestToMillis(t *testing.T) {
	tests := []struct {
		in      float64
		want    int64
		wantErr bool
	}{
		{in: 0, want: 0},
		{in: 1_700_000_000_000, want: 1_700_000_000_000},
		{in: -5000, want: -5000},
		{in: math.MinInt64, want: math.MinInt64},
		{in: 1 << 63, wantErr: true},
		{in: 0.25, wantErr: true},
		{in: math.NaN(), wantErr: true},
	}

	for _, tt := range tests {
		got, err := toMillis(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("toMillis(%v): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("toMillis(%v) = %d, %v; want %d", tt.in, got, err, tt.want)
		}
	}
}
