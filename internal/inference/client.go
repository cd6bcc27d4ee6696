package inference

import (
	"context"
	"fmt"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	pb "github.com/danielpatrickdp/drift-patch/go-engine/gen/driftpatchv1"
	"github.com/danielpatrickdp/drift-patch/go-engine/internal/matrix"
)

// #region types
// ModelInfo describes a served model as reported by the inference service.
type ModelInfo struct {
	ModelID       string
	FeatureCount  int
	BaseThreshold float64
	Version       string
}

// #endregion types

// #region client-struct
// Runtime wraps the gRPC connection to the model-serving inference service.
// It satisfies the validator's Predictor contract.
type Runtime struct {
	conn   *grpc.ClientConn
	client pb.InferenceServiceClient
}

// #endregion client-struct

// #region constructor
// NewRuntime connects to the inference gRPC server.
func NewRuntime(addr string) (*Runtime, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("grpc dial %s: %w", addr, err)
	}
	return &Runtime{
		conn:   conn,
		client: pb.NewInferenceServiceClient(conn),
	}, nil
}

// NewRuntimeWithService creates a Runtime with an injected service implementation.
// Used for testing without a real gRPC connection.
func NewRuntimeWithService(svc pb.InferenceServiceClient) *Runtime {
	return &Runtime{client: svc}
}

// #endregion constructor

// #region close
// Close shuts down the gRPC connection.
func (r *Runtime) Close() error {
	if r.conn == nil {
		return nil
	}
	return r.conn.Close()
}

// #endregion close

// #region predict
// Predict sends feature rows to the inference service and returns one
// score row per input row.
func (r *Runtime) Predict(ctx context.Context, modelID string, m matrix.Matrix) (matrix.Matrix, error) {
	rows := make([]*pb.FeatureRow, m.Rows())
	for i, row := range m {
		rows[i] = &pb.FeatureRow{Values: append([]float64(nil), row...)}
	}

	resp, err := r.client.Predict(ctx, &pb.PredictRequest{
		ModelId: modelID,
		Rows:    rows,
	})
	if err != nil {
		return nil, fmt.Errorf("predict rpc: %w", err)
	}
	if len(resp.Rows) != m.Rows() {
		return nil, fmt.Errorf("predict rpc: %d rows in, %d rows out", m.Rows(), len(resp.Rows))
	}

	out := make(matrix.Matrix, len(resp.Rows))
	for i, row := range resp.Rows {
		out[i] = append([]float64(nil), row.Scores...)
	}
	return out, nil
}

// #endregion predict

// #region model-info
// ModelInfo queries serving metadata for a model.
func (r *Runtime) ModelInfo(ctx context.Context, modelID string) (ModelInfo, error) {
	resp, err := r.client.ModelInfo(ctx, &pb.ModelInfoRequest{ModelId: modelID})
	if err != nil {
		return ModelInfo{}, fmt.Errorf("model info rpc: %w", err)
	}
	return ModelInfo{
		ModelID:       resp.ModelId,
		FeatureCount:  int(resp.FeatureCount),
		BaseThreshold: resp.BaseThreshold,
		Version:       resp.Version,
	}, nil
}

// #endregion model-info
