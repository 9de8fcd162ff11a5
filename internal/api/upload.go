package api

import (
	"context"
	"io"

	"github.com/bekzodm/sayohat/internal/cache"
	"github.com/bekzodm/sayohat/internal/model"
	"github.com/bekzodm/sayohat/internal/transport"
)

// UploadService sends files to /api/upload/file as multipart form data.
// Uploaded files are referenced transiently by tour images and category
// image URLs; nothing is cached and nothing is deleted client-side.
type UploadService struct {
	t   *transport.Client
	mut *cache.Mutator
}

func newUploadService(t *transport.Client, mut *cache.Mutator) *UploadService {
	return &UploadService{t: t, mut: mut}
}

// Upload streams content to the server and returns its stored location.
func (s *UploadService) Upload(ctx context.Context, filename string, content io.Reader) (model.UploadedFile, error) {
	var uploaded model.UploadedFile
	err := s.mut.Run(ctx, cache.Mutation{
		Name: "upload.file",
		// No keys: an upload becomes visible only once a tour or category
		// references its URL, and that write does its own invalidation.
		Do: func(ctx context.Context) error {
			resp, err := s.t.Post("/api/upload/file").File("file", filename, content).Send(ctx)
			if err != nil {
				return err
			}
			return resp.JSON(&uploaded)
		},
	})
	return uploaded, err
}
