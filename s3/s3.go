// Package s3 provides a mirdip.RawSource over objects in an S3 bucket,
// for datasets mirrored on object storage.
package s3

import (
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/pkg/errors"
	mirdip "github.com/slobentanzer/mirdip-adapter"
)

// RawSource lists the objects under bucket/prefix at construction time
// and streams each one in turn.
type RawSource struct {
	bucket string

	s3      *s3.S3
	objects []*s3.Object
	idx     int
}

// NewRawSource lists the matching objects and returns a RawSource over
// them.
func NewRawSource(region, bucket, prefix string) (*RawSource, error) {
	sess, err := session.NewSession(&aws.Config{Region: aws.String(region)})
	if err != nil {
		return nil, errors.Wrap(err, "getting aws session")
	}
	rs := &RawSource{
		bucket: bucket,
		s3:     s3.New(sess),
	}
	resp, err := rs.s3.ListObjects(&s3.ListObjectsInput{
		Bucket: aws.String(bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return nil, errors.Wrap(err, "listing objects")
	}
	rs.objects = resp.Contents
	return rs, nil
}

type objReader struct {
	name string
	body io.ReadCloser
}

func (o *objReader) Read(buf []byte) (int, error) { return o.body.Read(buf) }
func (o *objReader) Close() error                 { return o.body.Close() }
func (o *objReader) Name() string                 { return o.name }

// NextReader implements mirdip.RawSource.
func (rs *RawSource) NextReader() (mirdip.NamedReadCloser, error) {
	if rs.idx >= len(rs.objects) {
		return nil, io.EOF
	}
	obj := rs.objects[rs.idx]
	rs.idx++
	result, err := rs.s3.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(rs.bucket),
		Key:    obj.Key,
	})
	if err != nil {
		return nil, errors.Wrapf(err, "fetching %v", *obj.Key)
	}
	return &objReader{name: *obj.Key, body: result.Body}, nil
}
