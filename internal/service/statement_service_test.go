package service

import (
	"testing"
	"time"

	"lrs_insight_backend/internal/model"
	"lrs_insight_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 缺少必要字段的事件要在入库前被拒绝
func TestValidateStatement(t *testing.T) {
	valid := &model.Statement{
		ActorID:  "learner-001",
		Verb:     model.VerbCompleted,
		ObjectID: "https://lms.example.edu/mod/view.php?id=1",
	}
	assert.NoError(t, validateStatement(valid))

	noActor := *valid
	noActor.ActorID = ""
	assert.ErrorIs(t, validateStatement(&noActor), util.ErrInvalidStatement)

	noVerb := *valid
	noVerb.Verb = ""
	assert.ErrorIs(t, validateStatement(&noVerb), util.ErrInvalidStatement)
}

func TestStatementRequestToModel(t *testing.T) {
	ts := time.Date(2026, 3, 5, 10, 0, 0, 0, time.UTC)
	completion := true
	req := &StatementRequest{
		ActorID:  "learner-001",
		Verb:     "scored",
		ObjectID: "https://lms.example.edu/mod/view.php?id=1",
		ObjectExtensions: map[string]string{
			model.ActivityIDExtension: "alg-basic-1",
		},
		Timestamp:  ts,
		Score:      &model.Score{Raw: 85, Max: 100, Scaled: 0.85},
		Completion: &completion,
		Duration:   "PT45M",
	}

	st := req.toModel()
	require.NotNil(t, st)
	assert.Equal(t, model.VerbScored, st.Verb)
	assert.Equal(t, ts, st.Timestamp)
	assert.True(t, st.HasScore)
	assert.Equal(t, 0.85, st.Score.Scaled)
	assert.True(t, st.HasCompletion)
	assert.True(t, st.Completion)
	assert.Equal(t, "alg-basic-1", st.ActivityID())
}

// 没带时间戳的事件用服务器时间兜底
func TestStatementRequestToModelDefaultTimestamp(t *testing.T) {
	req := &StatementRequest{
		ActorID:  "learner-001",
		Verb:     "launched",
		ObjectID: "https://lms.example.edu/mod/view.php?id=1",
	}

	st := req.toModel()
	assert.False(t, st.Timestamp.IsZero())
	assert.False(t, st.HasScore)
	assert.False(t, st.HasCompletion)
}
