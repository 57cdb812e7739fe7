package service

import (
	"bytes"
	"context"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/homeschoolhq/hq-go-api/internal/dto"
	"github.com/homeschoolhq/hq-go-api/internal/store"
)

type stubUploader struct {
	lastName string
	url      string
	err      error
}

func (u *stubUploader) Upload(_ context.Context, name string, reader io.Reader) (string, error) {
	u.lastName = name
	if _, err := io.Copy(io.Discard, reader); err != nil {
		return "", err
	}
	return u.url, u.err
}

func newPortfolioService(t *testing.T, uploader ArtifactUploader) (PortfolioService, *store.Container) {
	t.Helper()
	container := store.NewContainer(rosterDocument(), nil, zerolog.Nop())
	validate := validator.New(validator.WithRequiredStructEnabled())
	return NewPortfolioService(container, uploader, validate, 1, zerolog.Nop()), container
}

func multipartFile(t *testing.T, name string, payload []byte) *multipart.FileHeader {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest("POST", "/", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["file"][0]
}

func TestPortfolioServiceAddAndList(t *testing.T) {
	svc, _ := newPortfolioService(t, nil)
	ctx := context.Background()

	saved, err := svc.Add(ctx, dto.PortfolioItemRequest{
		StudentID: "s1",
		Date:      "2025-01-06",
		Title:     "Volcano model",
		Subject:   "Science",
		URL:       "https://example.com/volcano.jpg",
	})
	require.NoError(t, err)
	require.NotEmpty(t, saved.ID)

	items, err := svc.List(ctx, "s1")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "Volcano model", items[0].Title)

	_, err = svc.List(ctx, "ghost")
	require.ErrorIs(t, err, ErrStudentNotFound)
}

func TestPortfolioServiceRemove(t *testing.T) {
	svc, _ := newPortfolioService(t, nil)
	ctx := context.Background()

	saved, err := svc.Add(ctx, dto.PortfolioItemRequest{
		StudentID: "s1",
		Date:      "2025-01-06",
		Title:     "Volcano model",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, "s1", saved.ID))
	require.ErrorIs(t, svc.Remove(ctx, "s1", saved.ID), ErrPortfolioItemNotFound)
}

func TestPortfolioServiceUploadArtifact(t *testing.T) {
	uploader := &stubUploader{url: "https://cdn.example.com/volcano.png"}
	svc, _ := newPortfolioService(t, uploader)

	// Smallest payload mimetype recognises as a PNG.
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	result, err := svc.UploadArtifact(context.Background(), multipartFile(t, "volcano.png", png))
	require.NoError(t, err)
	require.Equal(t, "https://cdn.example.com/volcano.png", result.URL)
	require.Equal(t, ".png", result.Format)
	require.Equal(t, int64(len(png)), result.Bytes)
	require.Equal(t, "volcano.png", uploader.lastName)
}

func TestPortfolioServiceUploadRejectsDisallowedType(t *testing.T) {
	svc, _ := newPortfolioService(t, &stubUploader{url: "https://cdn.example.com/x"})

	_, err := svc.UploadArtifact(context.Background(), multipartFile(t, "notes.txt", []byte("plain text")))
	require.ErrorIs(t, err, ErrArtifactTypeNotAllowed)
}

func TestPortfolioServiceUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := newPortfolioService(t, &stubUploader{url: "https://cdn.example.com/x"})

	big := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 1<<20)...)
	_, err := svc.UploadArtifact(context.Background(), multipartFile(t, "big.png", big))
	require.ErrorIs(t, err, ErrArtifactTooLarge)
}

func TestPortfolioServiceUploadWithoutBackend(t *testing.T) {
	svc, _ := newPortfolioService(t, nil)

	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 64)...)
	_, err := svc.UploadArtifact(context.Background(), multipartFile(t, "volcano.png", png))
	require.ErrorIs(t, err, ErrArtifactUploadsDisabled)
}
