package objectstorage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURLAndExtractKey(t *testing.T) {
	s := &OSSStorage{Endpoint: "https://oss-ap-northeast-2.aliyuncs.com", BucketName: "offer"}

	url := s.PublicURL("productImage/desk_1.png")
	assert.Equal(t, "https://offer.oss-ap-northeast-2.aliyuncs.com/productImage/desk_1.png", url)

	key, err := s.ExtractKey(url)
	require.NoError(t, err)
	assert.Equal(t, "productImage/desk_1.png", key)

	s.PublicBase = "https://cdn.offer.com"
	assert.Equal(t, "https://cdn.offer.com/productImage/desk_1.png", s.PublicURL("productImage/desk_1.png"))
	key, err = s.ExtractKey("https://cdn.offer.com/productImage/desk_1.png")
	require.NoError(t, err)
	assert.Equal(t, "productImage/desk_1.png", key)

	_, err = s.ExtractKey("")
	assert.Error(t, err)
}

func TestBuildObjectKey(t *testing.T) {
	s := &OSSStorage{Prefix: "uploads"}

	key := s.buildObjectKey("productImage", "My Desk.PNG")
	assert.True(t, strings.HasPrefix(key, "uploads/productImage/my-desk_"), key)
	assert.True(t, strings.HasSuffix(key, ".png"), key)
}
