package inference

import (
	"context"
	"errors"
	"testing"

	"google.golang.org/grpc"

	pb "github.com/danielpatrickdp/drift-patch/go-engine/gen/driftpatchv1"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
)

// #region mock
type mockInferenceService struct {
	pb.InferenceServiceClient

	predictResp *pb.PredictResponse
	predictErr  error

	infoResp *pb.ModelInfoResponse
	infoErr  error

	lastPredict *pb.PredictRequest
}

func (m *mockInferenceService) Predict(_ context.Context, req *pb.PredictRequest, _ ...grpc.CallOption) (*pb.PredictResponse, error) {
	m.lastPredict = req
	return m.predictResp, m.predictErr
}

func (m *mockInferenceService) ModelInfo(_ context.Context, _ *pb.ModelInfoRequest, _ ...grpc.CallOption) (*pb.ModelInfoResponse, error) {
	return m.infoResp, m.infoErr
}

// #endregion mock

// #region constructor-tests
func TestNewRuntimeInvalidAddr(t *testing.T) {
	r, err := NewRuntime("localhost:0")
	if err != nil {
		t.Fatalf("unexpected error creating runtime: %v", err)
	}
	defer r.Close()
}

func TestNewRuntimeWithService(t *testing.T) {
	r := NewRuntimeWithService(&mockInferenceService{})
	if r == nil {
		t.Fatal("expected non-nil runtime")
	}
	if r.client == nil {
		t.Fatal("expected non-nil internal client")
	}
}

// #endregion constructor-tests

// #region predict-tests
func TestPredict_Success(t *testing.T) {
	mock := &mockInferenceService{
		predictResp: &pb.PredictResponse{
			Rows: []*pb.OutputRow{
				{Scores: []float64{0.9}},
				{Scores: []float64{0.2}},
			},
		},
	}
	r := &Runtime{client: mock}

	out, err := r.Predict(context.Background(), "m1", matrix.Matrix{{1, 2}, {3, 4}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Rows() != 2 {
		t.Fatalf("expected 2 output rows, got %d", out.Rows())
	}
	if out[0][0] != 0.9 || out[1][0] != 0.2 {
		t.Errorf("scores not preserved: %v", out)
	}
	if mock.lastPredict.ModelId != "m1" {
		t.Errorf("model id not forwarded: %q", mock.lastPredict.ModelId)
	}
	if len(mock.lastPredict.Rows) != 2 || mock.lastPredict.Rows[1].Values[1] != 4 {
		t.Errorf("feature rows not forwarded: %+v", mock.lastPredict.Rows)
	}
}

func TestPredict_Error(t *testing.T) {
	mock := &mockInferenceService{
		predictErr: errors.New("rpc failed"),
	}
	r := &Runtime{client: mock}

	_, err := r.Predict(context.Background(), "m1", matrix.Matrix{{1}})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, mock.predictErr) {
		t.Errorf("expected wrapped rpc error, got: %v", err)
	}
}

func TestPredict_RowCountMismatch(t *testing.T) {
	mock := &mockInferenceService{
		predictResp: &pb.PredictResponse{Rows: []*pb.OutputRow{{Scores: []float64{0.5}}}},
	}
	r := &Runtime{client: mock}

	_, err := r.Predict(context.Background(), "m1", matrix.Matrix{{1}, {2}})
	if err == nil {
		t.Fatal("expected error on row count mismatch")
	}
}

// #endregion predict-tests

// #region model-info-tests
func TestModelInfo_Success(t *testing.T) {
	mock := &mockInferenceService{
		infoResp: &pb.ModelInfoResponse{
			ModelId:       "m1",
			FeatureCount:  20,
			BaseThreshold: 0.5,
			Version:       "v3",
		},
	}
	r := &Runtime{client: mock}

	info, err := r.ModelInfo(context.Background(), "m1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if info.FeatureCount != 20 || info.BaseThreshold != 0.5 || info.Version != "v3" {
		t.Errorf("info not mapped: %+v", info)
	}
}

func TestModelInfo_Error(t *testing.T) {
	mock := &mockInferenceService{
		infoErr: errors.New("unavailable"),
	}
	r := &Runtime{client: mock}

	_, err := r.ModelInfo(context.Background(), "m1")
	if err == nil {
		t.Fatal("expected error")
	}
}

// #endregion model-info-tests
