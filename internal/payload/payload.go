// Package payload opens the byte sources behind Bytes parameters: local files,
// stdin and S3 objects.
package payload

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"strings"

	"pinctl/internal/cmdlet"
	"pinctl/pkg/errors"
	"pinctl/pkg/security"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// StdinRef reads the payload from standard input
const StdinRef = "-"

// S3API is the part of the S3 client used to fetch payload objects
type S3API interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Opener resolves stream references. The S3 client is created on first use only.
type Opener struct {
	stdin io.Reader
	s3    func(ctx context.Context) (S3API, error)
}

// NewOpener creates an opener reading stdin from os.Stdin. s3Client may be nil, in which
// case s3:// references fail.
func NewOpener(s3Client func(ctx context.Context) (S3API, error)) *Opener {
	return &Opener{stdin: os.Stdin, s3: s3Client}
}

// Open implements cmdlet.StreamOpener
func (o *Opener) Open(ctx context.Context, ref cmdlet.StreamRef) (io.ReadCloser, error) {
	target := strings.TrimSpace(string(ref))

	switch {
	case target == "":
		return nil, errors.NewPayloadError("empty payload reference", nil)
	case target == StdinRef:
		// stdin belongs to the process
		return io.NopCloser(o.stdin), nil
	case strings.HasPrefix(target, "s3://"):
		return o.openS3(ctx, target)
	default:
		return openFile(target)
	}
}

func openFile(path string) (io.ReadCloser, error) {
	if security.ContainsUnsafePath(path) {
		return nil, errors.NewPayloadError(fmt.Sprintf("refusing unsafe payload path %q", path), nil)
	}
	// #nosec G304 - path is checked for traversal patterns above
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewPayloadError(fmt.Sprintf("failed to open payload file %s", path), err)
	}
	return f, nil
}

// ParseS3URI splits s3://bucket/key into bucket and key
func ParseS3URI(uri string) (bucket, key string, err error) {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "s3" {
		return "", "", errors.NewPayloadError(fmt.Sprintf("invalid S3 URI %q", uri), err)
	}
	bucket = u.Host
	key = strings.TrimPrefix(u.Path, "/")
	if bucket == "" || key == "" {
		return "", "", errors.NewPayloadError(fmt.Sprintf("S3 URI %q must name a bucket and a key", uri), nil)
	}
	return bucket, key, nil
}

func (o *Opener) openS3(ctx context.Context, uri string) (io.ReadCloser, error) {
	bucket, key, err := ParseS3URI(uri)
	if err != nil {
		return nil, err
	}
	if o.s3 == nil {
		return nil, errors.NewPayloadError("S3 payloads are not available", nil)
	}

	client, err := o.s3(ctx)
	if err != nil {
		return nil, err
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.NewPayloadError(fmt.Sprintf("failed to fetch %s", uri), err).
			WithContext("bucket", bucket).
			WithContext("key", key)
	}
	return out.Body, nil
}
