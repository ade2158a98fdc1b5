package methods

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var ErrAssetUnavailable = errors.New("imagem do QR indisponivel")

// AssetSource opens the QR image.
type AssetSource interface {
	Open(ctx context.Context) (io.ReadCloser, string, error)
}

type GetObjectAPI interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type S3Source struct {
	Client GetObjectAPI
	Bucket string
	Key    string
}

func (s S3Source) Open(ctx context.Context) (io.ReadCloser, string, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrAssetUnavailable, err)
	}
	return out.Body, aws.ToString(out.ContentType), nil
}

type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

type HTTPSource struct {
	Client Doer
	URL    string
}

func (h HTTPSource) Open(ctx context.Context) (io.ReadCloser, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.URL, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrAssetUnavailable, err)
	}
	resp, err := h.Client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrAssetUnavailable, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, "", fmt.Errorf("%w: status %d", ErrAssetUnavailable, resp.StatusCode)
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

type QR struct {
	ImageURL string `json:"imageUrl,omitempty"`
	FileName string `json:"fileName"`

	source AssetSource
}

func NewQR(imageURL, fileName string, source AssetSource) *QR {
	if fileName == "" {
		fileName = "image.png"
	}
	return &QR{ImageURL: imageURL, FileName: fileName, source: source}
}

func (q *QR) Method() Method {
	return DuitNowQR
}

// Download copies the QR image to w and returns its content type.
func (q *QR) Download(ctx context.Context, w io.Writer) (string, error) {
	if q.source == nil {
		return "", ErrAssetUnavailable
	}
	body, contentType, err := q.source.Open(ctx)
	if err != nil {
		return "", err
	}
	defer body.Close()

	if contentType == "" {
		contentType = "image/png"
	}
	if _, err := io.Copy(w, body); err != nil {
		return "", fmt.Errorf("erro ao copiar imagem: %w", err)
	}
	return contentType, nil
}
