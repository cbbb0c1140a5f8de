package s3

import (
	"context"
	"fmt"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/vk/gridtask/internal/ctxlog"
	"github.com/vk/gridtask/internal/handlers"
)

// Kind is the action kind used in `run` blocks.
const Kind = "s3"

// Module implements the handlers.Module interface for this package.
type Module struct {
	// Client is shared by all s3 actions to reuse TCP connections. A nil
	// client is replaced with a default one on registration.
	Client *resty.Client
}

// Input defines the arguments of a `run "s3"` block.
type Input struct {
	Action     string `hcl:"action"`
	SourcePath string `hcl:"source_path,optional"`
	UploadURL  string `hcl:"upload_url,optional"`
}

// Output is returned by a successful transfer.
type Output struct {
	Success bool
	Status  string
}

// handleUpload PUTs a file to a pre-signed URL.
func (m *Module) handleUpload(ctx context.Context, input *Input) (*Output, error) {
	logger := ctxlog.FromContext(ctx).With("action", "upload")

	if input.SourcePath == "" || input.UploadURL == "" {
		return nil, fmt.Errorf("s3 upload requires source_path and upload_url")
	}

	data, err := os.ReadFile(input.SourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read source file '%s': %w", input.SourcePath, err)
	}

	contentType := mime.TypeByExtension(filepath.Ext(input.SourcePath))
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	logger.Info("Uploading file to S3.", "source", input.SourcePath, "size", len(data), "contentType", contentType)

	resp, err := m.Client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetBody(data).
		Put(input.UploadURL)
	if err != nil {
		return nil, fmt.Errorf("failed to execute S3 upload request: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, fmt.Errorf("S3 upload failed with status: %s", resp.Status())
	}

	logger.Info("Successfully uploaded file.", "status", resp.Status())
	return &Output{Success: true, Status: resp.Status()}, nil
}

// OnRunS3 dispatches on the requested action.
func (m *Module) OnRunS3(ctx context.Context, input *Input) (any, error) {
	switch strings.ToLower(input.Action) {
	case "upload":
		out, err := m.handleUpload(ctx, input)
		if err != nil {
			return nil, err
		}
		return out, nil
	case "download":
		return nil, fmt.Errorf("s3 action 'download' is not yet implemented")
	default:
		return nil, fmt.Errorf("unknown s3 action: '%s'", input.Action)
	}
}

// Register registers the handler with the engine.
func (m *Module) Register(h *handlers.Handlers) {
	if m.Client == nil {
		m.Client = resty.New()
	}
	handlers.Register(h, Kind, m.OnRunS3)
}
