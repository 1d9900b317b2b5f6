package openaiEmbedding

import (
	"context"
	"errors"

	"github.com/asampath/GoRAG/internal/config"
	"github.com/asampath/GoRAG/internal/rag/embedding"
	"github.com/asampath/GoRAG/pkg/logger_i"
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type client struct {
	openAi openai.Client
	model  string
	logger *logger_i.Logger
}

// NewClient builds an OpenAI embedding client, the alternative provider
// behind the same Embedder port.
func NewClient(apikey string, modelName string) (embedding.Embedder, error) {
	if apikey == "" {
		return nil, errors.New("missing OpenAI api key")
	}
	logger := logger_i.NewLogger("openai_embedding")
	logger.Info("OpenAI Embedding client created", "model", modelName)

	return &client{
		openAi: openai.NewClient(option.WithAPIKey(apikey)),
		model:  modelName,
		logger: logger,
	}, nil
}

func (c *client) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	vectors, err := c.BatchEmbedding(ctx, []string{query})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New("empty embedding response")
	}
	return vectors[0], nil
}

func (c *client) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))

	resp, err := c.openAi.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Model:      openai.EmbeddingModel(c.model),
		Input:      openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: chunks},
		Dimensions: openai.Int(int64(config.EmbeddingOutputDimensionality)),
	})
	if err != nil {
		log.Error("Error getting Embeddings from OpenAI", "error", err)
		return nil, err
	}

	vectors := make([][]float32, len(resp.Data))
	for _, item := range resp.Data {
		vec := make([]float32, len(item.Embedding))
		for i, v := range item.Embedding {
			vec[i] = float32(v)
		}
		vectors[item.Index] = vec
	}
	return vectors, nil
}
