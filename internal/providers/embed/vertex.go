package embed

import (
	"context"
	"errors"
	"fmt"

	aiplatform "cloud.google.com/go/aiplatform/apiv1"
	"cloud.google.com/go/aiplatform/apiv1/aiplatformpb"
	"google.golang.org/api/option"
	"google.golang.org/protobuf/types/known/structpb"
)

// VertexEmbedder calls a Vertex AI text-embedding publisher model. Vertex
// embeddings are deterministic for identical input, which is all the
// pipeline requires.
type VertexEmbedder struct {
	client   *aiplatform.PredictionClient
	endpoint string
}

func NewVertexEmbedder(ctx context.Context, projectID, location, modelName string) (*VertexEmbedder, error) {
	if modelName == "" {
		modelName = "text-embedding-004"
	}

	c, err := aiplatform.NewPredictionClient(ctx,
		option.WithEndpoint(fmt.Sprintf("%s-aiplatform.googleapis.com:443", location)))
	if err != nil {
		return nil, err
	}

	return &VertexEmbedder{
		client: c,
		endpoint: fmt.Sprintf("projects/%s/locations/%s/publishers/google/models/%s",
			projectID, location, modelName),
	}, nil
}

func (v *VertexEmbedder) Close() error { return v.client.Close() }

func (v *VertexEmbedder) Dimensions() int { return Dim }
func (v *VertexEmbedder) Name() string    { return "vertex" }

func (v *VertexEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	instance, err := structpb.NewStruct(map[string]any{
		"content":   text,
		"task_type": "SEMANTIC_SIMILARITY",
	})
	if err != nil {
		return nil, err
	}

	params, err := structpb.NewStruct(map[string]any{
		"outputDimensionality": Dim,
	})
	if err != nil {
		return nil, err
	}

	resp, err := v.client.Predict(ctx, &aiplatformpb.PredictRequest{
		Endpoint:   v.endpoint,
		Instances:  []*structpb.Value{structpb.NewStructValue(instance)},
		Parameters: structpb.NewStructValue(params),
	})
	if err != nil {
		return nil, err
	}
	if len(resp.Predictions) == 0 {
		return nil, errors.New("vertex returned no predictions")
	}

	values, err := embeddingValues(resp.Predictions[0])
	if err != nil {
		return nil, err
	}

	vec := make([]float32, len(values))
	for i, val := range values {
		vec[i] = float32(val.GetNumberValue())
	}
	if len(vec) != Dim {
		return nil, fmt.Errorf("vertex returned %d dimensions, want %d", len(vec), Dim)
	}
	return vec, nil
}

func embeddingValues(pred *structpb.Value) ([]*structpb.Value, error) {
	st := pred.GetStructValue()
	if st == nil {
		return nil, errors.New("vertex prediction is not a struct")
	}
	emb := st.Fields["embeddings"].GetStructValue()
	if emb == nil {
		return nil, errors.New("vertex prediction has no embeddings field")
	}
	list := emb.Fields["values"].GetListValue()
	if list == nil {
		return nil, errors.New("vertex embeddings has no values list")
	}
	return list.Values, nil
}
