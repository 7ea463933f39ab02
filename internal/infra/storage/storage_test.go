package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestToWebP_Downscales(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngBytes(t, 800, 400)), 256)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 256, cfg.Width)
	assert.Equal(t, 128, cfg.Height)
}

func TestToWebP_KeepsSmallImages(t *testing.T) {
	out, err := ToWebP(bytes.NewReader(pngBytes(t, 40, 60)), 256)
	require.NoError(t, err)

	cfg, err := webp.DecodeConfig(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Width)
	assert.Equal(t, 60, cfg.Height)
}

func TestToWebP_RejectsGarbage(t *testing.T) {
	_, err := ToWebP(bytes.NewReader([]byte("not an image")), 256)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

type stubS3 struct {
	input *s3.PutObjectInput
	body  []byte
}

func (s *stubS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	s.input = in
	s.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_Put(t *testing.T) {
	api := &stubS3{}
	store := &S3Store{client: api, bucket: "branding", publicBase: "https://cdn.example.com"}

	url, err := store.Put(context.Background(), "styles/1/logo/abc.webp", []byte("data"), "image/webp")
	require.NoError(t, err)

	assert.Equal(t, "https://cdn.example.com/styles/1/logo/abc.webp", url)
	assert.Equal(t, "branding", aws.ToString(api.input.Bucket))
	assert.Equal(t, "image/webp", aws.ToString(api.input.ContentType))
	assert.Equal(t, []byte("data"), api.body)
}

func TestNewS3Store_DefaultPublicURL(t *testing.T) {
	store := NewS3Store(S3Config{Bucket: "branding", Region: "sa-east-1"})
	assert.Equal(t, "https://branding.s3.sa-east-1.amazonaws.com", store.publicBase)
}
