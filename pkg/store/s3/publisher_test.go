package s3

import (
	"context"
	"errors"
	"io"
	"testing"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockS3Client struct {
	mock.Mock
}

func (m *MockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if out := args.Get(0); out != nil {
		return out.(*s3.PutObjectOutput), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestPublisher_Publish(t *testing.T) {
	// Given
	client := new(MockS3Client)
	var body []byte
	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return awssdk.ToString(in.Bucket) == "decks" &&
			awssdk.ToString(in.Key) == "weekly/run-7.pdf" &&
			awssdk.ToString(in.ContentType) == "application/pdf" &&
			awssdk.ToInt64(in.ContentLength) == 4
	})).Run(func(args mock.Arguments) {
		body, _ = io.ReadAll(args.Get(1).(*s3.PutObjectInput).Body)
	}).Return(&s3.PutObjectOutput{}, nil).Once()

	p, err := NewPublisher(client, Settings{Bucket: "decks", Prefix: "weekly/"})
	require.NoError(t, err)

	// When
	uri, err := p.Publish(context.Background(), "run-7", []byte("%PDF"))

	// Then
	require.NoError(t, err)
	assert.Equal(t, "s3://decks/weekly/run-7.pdf", uri)
	assert.Equal(t, []byte("%PDF"), body)
	client.AssertExpectations(t)
}

func TestPublisher_UploadError(t *testing.T) {
	client := new(MockS3Client)
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("AccessDenied")).Once()
	p, err := NewPublisher(client, Settings{Bucket: "decks"})
	require.NoError(t, err)

	_, err = p.Publish(context.Background(), "run-8", []byte("x"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "reports/run-8.pdf")
	assert.Contains(t, err.Error(), "AccessDenied")
}

func TestNewPublisher_Validation(t *testing.T) {
	_, err := NewPublisher(new(MockS3Client), Settings{})
	assert.ErrorIs(t, err, ErrNoBucket)

	_, err = NewPublisher(nil, Settings{Bucket: "b"})
	assert.Error(t, err)

	_, err = NewPublisherFromConfig(context.Background(), Settings{})
	assert.ErrorIs(t, err, ErrNoBucket)
}

func TestPublisher_DefaultPrefix(t *testing.T) {
	p, err := NewPublisher(new(MockS3Client), Settings{Bucket: "b"})
	require.NoError(t, err)

	assert.Equal(t, "reports/abc.pdf", p.Key("abc"))
}
