package docai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	documentai "cloud.google.com/go/documentai/apiv1"
	"cloud.google.com/go/documentai/apiv1/documentaipb"
	"google.golang.org/api/option"

	"github.com/joseph-ayodele/invoice-tracker/constants"
	"github.com/joseph-ayodele/invoice-tracker/internal/common"
	"github.com/joseph-ayodele/invoice-tracker/internal/extract"
)

// Client calls a Document AI processor. It performs no retries.
type Client struct {
	dp      *documentai.DocumentProcessorClient
	name    string
	timeout time.Duration
	logger  *slog.Logger
}

// ProcessorName returns the resource name of a processor.
func ProcessorName(projectID, location, processorID string) string {
	return fmt.Sprintf("projects/%s/locations/%s/processors/%s", projectID, location, processorID)
}

// Endpoint returns the regional API endpoint for location.
func Endpoint(location string) string {
	return fmt.Sprintf("%s-documentai.googleapis.com:443", location)
}

func NewClient(ctx context.Context, cfg common.DocumentAIConfig, logger *slog.Logger) (*Client, error) {
	if logger == nil {
		logger = slog.Default()
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = Endpoint(cfg.Location)
	}
	opts := []option.ClientOption{option.WithEndpoint(endpoint)}
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	dp, err := documentai.NewDocumentProcessorClient(ctx, opts...)
	if err != nil {
		logger.Error("failed to create document ai client", "endpoint", endpoint, "error", err)
		return nil, common.NewClassifierError(err)
	}
	name := ProcessorName(cfg.ProjectID, cfg.Location, cfg.ProcessorID)
	logger.Info("document ai client ready", "endpoint", endpoint, "processor", name)
	return &Client{dp: dp, name: name, timeout: cfg.Timeout, logger: logger}, nil
}

// Process sends content to the processor. An unsupported MIME type fails before any request.
func (c *Client) Process(ctx context.Context, content []byte, mimeType string) (*extract.Document, error) {
	if !constants.IsSupportedMime(mimeType) {
		return nil, common.UnsupportedFormatf("mime type %q", mimeType)
	}

	ctx, cancel := common.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	resp, err := c.dp.ProcessDocument(ctx, &documentaipb.ProcessRequest{
		Name: c.name,
		Source: &documentaipb.ProcessRequest_RawDocument{
			RawDocument: &documentaipb.RawDocument{Content: content, MimeType: mimeType},
		},
	})
	if err != nil {
		cerr := common.NewClassifierError(err)
		c.logger.Error("docai.process.failed",
			"processor", c.name, "code", common.ClassifierCode(cerr).String(), "error", err)
		return nil, cerr
	}

	doc := resp.GetDocument()
	c.logger.Info("docai.process.ok",
		"processor", c.name,
		"bytes", len(content),
		"pages", len(doc.GetPages()),
		"entities", len(doc.GetEntities()),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	return ToDocument(doc), nil
}

func (c *Client) Close() error {
	return c.dp.Close()
}
