//go:build integration

package validation_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"coursecloud/internal/enrollment/models"
	"coursecloud/internal/validation"
	"coursecloud/internal/validation/mocks"
	id "coursecloud/pkg/domain"
	"coursecloud/pkg/testutil/containers"
)

type CachedClientRedisSuite struct {
	suite.Suite
	redis  *containers.RedisContainer
	ctrl   *gomock.Controller
	inner  *mocks.MockClient
	client *validation.CachedClient
}

func TestCachedClientRedisSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(CachedClientRedisSuite))
}

func (s *CachedClientRedisSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
}

func (s *CachedClientRedisSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
	s.ctrl = gomock.NewController(s.T())
	s.inner = mocks.NewMockClient(s.ctrl)
	s.client = validation.NewCachedClient(s.inner, s.redis.Client, time.Minute,
		validation.WithCacheLogger(discardLogger()))
}

func (s *CachedClientRedisSuite) TestFoundStudentIsServedFromCache() {
	ctx := context.Background()
	s.inner.EXPECT().ValidateStudent(gomock.Any(), id.StudentID("S1")).
		Return(validation.Found(models.StudentSnapshot{StudentID: "S1", Name: "Ada"})).Times(1)

	first := s.client.ValidateStudent(ctx, "S1")
	second := s.client.ValidateStudent(ctx, "S1")

	s.True(first.IsFound())
	s.True(second.IsFound())
	s.Equal(first.Value, second.Value)

	ttl, err := s.redis.Client.TTL(ctx, "enrollment:student:S1").Result()
	s.Require().NoError(err)
	s.Greater(ttl, time.Duration(0))
	s.LessOrEqual(ttl, time.Minute)
}

func (s *CachedClientRedisSuite) TestNotFoundAndUnavailableAreNotCached() {
	ctx := context.Background()
	gomock.InOrder(
		s.inner.EXPECT().ValidateStudent(gomock.Any(), id.StudentID("S2")).
			Return(validation.NotFound[models.StudentSnapshot]()),
		s.inner.EXPECT().ValidateStudent(gomock.Any(), id.StudentID("S2")).
			Return(validation.Unavailable[models.StudentSnapshot]("timeout")),
		s.inner.EXPECT().ValidateStudent(gomock.Any(), id.StudentID("S2")).
			Return(validation.Found(models.StudentSnapshot{StudentID: "S2"})),
	)

	s.True(s.client.ValidateStudent(ctx, "S2").IsNotFound())
	s.True(s.client.ValidateStudent(ctx, "S2").IsUnavailable())
	s.True(s.client.ValidateStudent(ctx, "S2").IsFound())
}

func (s *CachedClientRedisSuite) TestCorruptEntryFallsThrough() {
	ctx := context.Background()
	s.Require().NoError(s.redis.Client.Set(ctx, "enrollment:student:S3", "{not json", time.Minute).Err())
	s.inner.EXPECT().ValidateStudent(gomock.Any(), id.StudentID("S3")).
		Return(validation.Found(models.StudentSnapshot{StudentID: "S3", Name: "Grace"}))

	got := s.client.ValidateStudent(ctx, "S3")
	s.True(got.IsFound())
	s.Equal("Grace", got.Value.Name)
}
