package engine

import (
	"testing"

	"lrs_insight_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildIndexGrouping(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		completed("alice", "alg-basic-1", day(1), "PT30M"),
		scored("bob", "alg-basic-1", day(2), 80, 0.8),
		scored("alice", "alg-basic-2", day(3), 70, 0.7),
	}
	idx := BuildIndex(statements, catalog)

	assert.Equal(t, []int{0, 1}, idx.ByActivity("alg-basic-1"))
	assert.Equal(t, []int{0, 2}, idx.ByActor("alice"))
	assert.Equal(t, []int{0}, idx.ByActivityActor("alg-basic-1", "alice"))
	assert.Equal(t, []string{"alice", "bob"}, idx.Actors())
	assert.Equal(t, 0, idx.UnresolvableCount())
}

func TestBuildIndexUnresolvableActivity(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		completed("alice", "alg-basic-1", day(1), "PT30M"),
		// 目录之外的活动：不进活动索引，但保留在学习者时间线里
		completed("alice", "ghost-activity", day(2), "PT10M"),
	}
	idx := BuildIndex(statements, catalog)

	assert.Empty(t, idx.ByActivity("ghost-activity"))
	assert.Len(t, idx.ByActor("alice"), 2)
	assert.Equal(t, 1, idx.UnresolvableCount())
}

func TestActivityIDExtensionFallback(t *testing.T) {
	// 扩展字段缺失时回退到原始 objectId
	s := model.Statement{
		ObjectID:         "https://lms.example/object/raw",
		ObjectExtensions: map[string]string{},
	}
	assert.Equal(t, "https://lms.example/object/raw", s.ActivityID())

	s.ObjectExtensions[model.ActivityIDExtension] = "alg-basic-1"
	assert.Equal(t, "alg-basic-1", s.ActivityID())
}

func TestActorsOnActivity(t *testing.T) {
	catalog := testCatalog()
	statements := []model.Statement{
		scored("bob", "alg-basic-1", day(1), 60, 0.6),
		scored("alice", "alg-basic-1", day(2), 80, 0.8),
		scored("bob", "alg-basic-1", day(3), 70, 0.7),
	}
	idx := BuildIndex(statements, catalog)

	actors := idx.ActorsOnActivity("alg-basic-1")
	require.Len(t, actors, 2)
	// 首次出现顺序
	assert.Equal(t, []string{"bob", "alice"}, actors)
}
