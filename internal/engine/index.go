package engine

import (
	"lrs_insight_backend/internal/model"
)

// Index 事件快照索引
// 事件按输入顺序存放在 arena 中，二级索引保存下标列表，
// 每次快照构建一次，之后所有聚合共用，避免各处重复分组
type Index struct {
	Statements []model.Statement
	Catalog    *model.Catalog

	byActivity        map[string][]int
	byActor           map[string][]int
	byActivityActor   map[activityActorKey][]int
	resolvedActivity  map[int]string // arena 下标 -> 已解析的活动ID
	unresolvableCount int
}

type activityActorKey struct {
	ActivityID string
	ActorID    string
}

// BuildIndex 从原始事件列表和课程目录构建索引
// 活动ID无法在目录中解析的事件不进入活动维度索引，
// 但仍保留在学习者时间线里（不活跃分析只需要 actor+时间+时长）
func BuildIndex(statements []model.Statement, catalog *model.Catalog) *Index {
	idx := &Index{
		Statements:       statements,
		Catalog:          catalog,
		byActivity:       make(map[string][]int),
		byActor:          make(map[string][]int),
		byActivityActor:  make(map[activityActorKey][]int),
		resolvedActivity: make(map[int]string),
	}

	for i := range statements {
		st := &statements[i]
		idx.byActor[st.ActorID] = append(idx.byActor[st.ActorID], i)

		activityID := st.ActivityID()
		if act, _ := catalog.FindActivity(activityID); act == nil {
			idx.unresolvableCount++
			continue
		}

		idx.resolvedActivity[i] = activityID
		idx.byActivity[activityID] = append(idx.byActivity[activityID], i)
		key := activityActorKey{ActivityID: activityID, ActorID: st.ActorID}
		idx.byActivityActor[key] = append(idx.byActivityActor[key], i)
	}

	return idx
}

// ByActivity 某活动的全部事件下标（输入顺序）
func (idx *Index) ByActivity(activityID string) []int {
	return idx.byActivity[activityID]
}

// ByActor 某学习者的全部事件下标（输入顺序），含目录解析失败的事件
func (idx *Index) ByActor(actorID string) []int {
	return idx.byActor[actorID]
}

// ByActivityActor 某学习者在某活动上的事件下标
func (idx *Index) ByActivityActor(activityID, actorID string) []int {
	return idx.byActivityActor[activityActorKey{ActivityID: activityID, ActorID: actorID}]
}

// Actors 出现过事件的学习者集合（首次出现顺序）
func (idx *Index) Actors() []string {
	seen := make(map[string]bool)
	var actors []string
	for i := range idx.Statements {
		id := idx.Statements[i].ActorID
		if !seen[id] {
			seen[id] = true
			actors = append(actors, id)
		}
	}
	return actors
}

// ActorsOnActivity 在某活动上有事件的学习者集合（首次出现顺序）
func (idx *Index) ActorsOnActivity(activityID string) []string {
	seen := make(map[string]bool)
	var actors []string
	for _, i := range idx.byActivity[activityID] {
		id := idx.Statements[i].ActorID
		if !seen[id] {
			seen[id] = true
			actors = append(actors, id)
		}
	}
	return actors
}

// UnresolvableCount 目录里找不到对应活动的事件数
func (idx *Index) UnresolvableCount() int {
	return idx.unresolvableCount
}
