package audit

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeObjectPutter struct {
	objects map[string]string
	types   map[string]string
	err     error
}

func (f *fakeObjectPutter) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.objects[key] = string(body)
	f.types[key] = aws.ToString(params.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func TestS3ExporterPutsBothObjects(t *testing.T) {
	putter := &fakeObjectPutter{objects: map[string]string{}, types: map[string]string{}}
	exp := newS3Exporter(putter, "credit-audit")

	require.NoError(t, exp.Export(context.Background(), testRecord))

	assert.Equal(t, map[string]string{
		"credit-audit/2024-05-17_08-04-05/input.txt":  testRecord.Input,
		"credit-audit/2024-05-17_08-04-05/output.txt": testRecord.Output,
	}, putter.objects)
	assert.Equal(t, textContentType, putter.types["credit-audit/2024-05-17_08-04-05/input.txt"])
}

func TestS3ExporterWrapsErrors(t *testing.T) {
	exp := newS3Exporter(&fakeObjectPutter{err: errors.New("AccessDenied")}, "credit-audit")

	err := exp.Export(context.Background(), testRecord)
	assert.ErrorIs(t, err, ErrExport)
}
