// Package media stores technician portfolio photos: images are
// downscaled, re-encoded as WebP and pushed to S3.
package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/chai2010/webp"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	xdraw "golang.org/x/image/draw"
)

const (
	maxEdge     = 1024
	webpQuality = 80
)

type Uploader struct {
	client *s3.Client
	bucket string
	region string
	logger zerolog.Logger
}

func NewUploader(region, accessKey, secretKey, bucket string, logger zerolog.Logger) *Uploader {
	client := s3.New(s3.Options{
		Region:      region,
		Credentials: credentials.NewStaticCredentialsProvider(accessKey, secretKey, ""),
	})

	return &Uploader{
		client: client,
		bucket: bucket,
		region: region,
		logger: logger.With().Str("component", "media_uploader").Logger(),
	}
}

// UploadPhoto reads a JPEG/PNG, fits it inside maxEdge, encodes WebP
// and uploads under a fresh key. Returns the public URL.
func (u *Uploader) UploadPhoto(ctx context.Context, r io.Reader) (string, error) {
	src, _, err := image.Decode(r)
	if err != nil {
		return "", fmt.Errorf("decode image: %w", err)
	}

	scaled := fit(src, maxEdge)

	var buf bytes.Buffer
	if err := webp.Encode(&buf, scaled, &webp.Options{Quality: webpQuality}); err != nil {
		return "", fmt.Errorf("encode webp: %w", err)
	}

	key := "technicians/" + uuid.NewString() + ".webp"

	_, err = u.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(u.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(buf.Bytes()),
		ContentType: aws.String("image/webp"),
	})
	if err != nil {
		return "", fmt.Errorf("s3 put: %w", err)
	}

	url := fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", u.bucket, u.region, key)
	u.logger.Debug().Str("key", key).Msg("photo uploaded")

	return url, nil
}

// fit scales the image down so its longest edge is at most edge px,
// never scaling up.
func fit(src image.Image, edge int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if w <= edge && h <= edge {
		return src
	}

	if w >= h {
		h = h * edge / w
		w = edge
	} else {
		w = w * edge / h
		h = edge
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, b, xdraw.Over, nil)
	return dst
}
