package infra_s3

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"
	app_config "github.com/humanbelnik/moviematch/internal/config"
	"github.com/humanbelnik/moviematch/internal/model"
	"github.com/ozontech/allure-go/pkg/framework/provider"
	"github.com/ozontech/allure-go/pkg/framework/suite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type PosterStorageUnitSuite struct {
	suite.Suite
}

type fakeAPI struct {
	headErr error
	putErr  error

	key         string
	contentType string
	body        []byte
	acl         types.ObjectCannedACL
}

func (f *fakeAPI) HeadBucket(ctx context.Context, in *s3.HeadBucketInput, optFns ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

func (f *fakeAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	f.key = aws.ToString(in.Key)
	f.contentType = aws.ToString(in.ContentType)
	f.acl = in.ACL
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, nil
}

func testConfig() app_config.S3 {
	return app_config.S3{
		Bucket:    "moviematch-posters",
		Prefix:    "posters",
		Endpoint:  "https://storage.yandexcloud.net",
		Region:    "ru-central1",
		PublicURL: "https://cdn.example.org/",
	}
}

func (s *PosterStorageUnitSuite) TestSave(t provider.T) {
	t.Parallel()

	api := &fakeAPI{}
	storage, err := New(context.Background(), api, testConfig(), slog.Default())
	require.NoError(t, err)
	id := uuid.MustParse("7f1c2a8e-4b7d-4c56-9a1e-2f3b4c5d6e7f")

	link, err := storage.Save(context.Background(), model.Poster{
		MovieID:     id,
		Filename:    "301.JPEG",
		ContentType: "image/jpeg",
		Content:     []byte{0xff, 0xd8, 0xff},
	})

	require.NoError(t, err)
	assert.Equal(t, "posters/7f1c2a8e-4b7d-4c56-9a1e-2f3b4c5d6e7f.jpeg", api.key)
	assert.Equal(t, "https://cdn.example.org/posters/7f1c2a8e-4b7d-4c56-9a1e-2f3b4c5d6e7f.jpeg", link)
	assert.Equal(t, "image/jpeg", api.contentType)
	assert.Equal(t, types.ObjectCannedACLPublicRead, api.acl)
	assert.Equal(t, []byte{0xff, 0xd8, 0xff}, api.body)
}

func (s *PosterStorageUnitSuite) TestSaveRejectsEmptyPoster(t provider.T) {
	t.Parallel()

	storage, err := New(context.Background(), &fakeAPI{}, testConfig(), slog.Default())
	require.NoError(t, err)

	_, err = storage.Save(context.Background(), model.Poster{MovieID: uuid.New()})

	assert.ErrorIs(t, err, ErrEmptyPoster)
}

func (s *PosterStorageUnitSuite) TestSaveFailure(t provider.T) {
	t.Parallel()

	failure := errors.New("access denied")
	storage, err := New(context.Background(), &fakeAPI{putErr: failure}, testConfig(), slog.Default())
	require.NoError(t, err)

	_, err = storage.Save(context.Background(), model.Poster{MovieID: uuid.New(), Content: []byte{1}})

	assert.ErrorIs(t, err, failure)
}

func (s *PosterStorageUnitSuite) TestNewChecksBucket(t provider.T) {
	t.Parallel()

	t.Run("Should report missing bucket", func(t provider.T) {
		t.Parallel()
		_, err := New(context.Background(), &fakeAPI{headErr: &types.NotFound{}}, testConfig(), slog.Default())
		assert.ErrorContains(t, err, "does not exist")
	})

	t.Run("Should report inaccessible bucket", func(t provider.T) {
		t.Parallel()
		_, err := New(context.Background(), &fakeAPI{headErr: errors.New("forbidden")}, testConfig(), slog.Default())
		assert.ErrorContains(t, err, "not accessible")
	})
}

func (s *PosterStorageUnitSuite) TestPublicBase(t provider.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		mutate   func(c *app_config.S3)
		expected string
	}{
		{name: "Should prefer public url", mutate: func(c *app_config.S3) {}, expected: "https://cdn.example.org"},
		{name: "Should fall back to path style endpoint", mutate: func(c *app_config.S3) { c.PublicURL = "" }, expected: "https://storage.yandexcloud.net/moviematch-posters"},
		{
			name:     "Should fall back to virtual hosted aws url",
			mutate:   func(c *app_config.S3) { c.PublicURL, c.Endpoint, c.Region = "", "", "eu-west-1" },
			expected: "https://moviematch-posters.s3.eu-west-1.amazonaws.com",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t provider.T) {
			t.Parallel()
			cfg := testConfig()
			tc.mutate(&cfg)
			assert.Equal(t, tc.expected, publicBase(cfg))
		})
	}
}

func TestPosterStorageUnitSuite(t *testing.T) {
	suite.RunSuite(t, new(PosterStorageUnitSuite))
}
